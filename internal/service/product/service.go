package product

import (
	"context"
	"strings"

	"tsrfashion-backend/internal/domain"
	productrepo "tsrfashion-backend/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}
