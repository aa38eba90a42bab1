package cart

import (
	"context"
	"errors"
	"strings"

	"tsrfashion-backend/internal/domain"
	cartrepo "tsrfashion-backend/internal/repository/cart"
)

type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	Create(ctx context.Context, in cartrepo.CreateCartInput) (*domain.Cart, error)
	GetByID(ctx context.Context, id string) (*domain.Cart, error)
	GetActiveByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	GetActiveByAnonymous(ctx context.Context, anonymousID string) (*domain.Cart, error)
	AssignCustomer(ctx context.Context, cartID, customerID string) error
	AddItem(ctx context.Context, cartID string, product domain.Product, quantity int) error
	ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) error
	Clear(ctx context.Context, cartID string) error
}

type productRepo interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Resolve returns the active cart for the actor, or for the anonymous id
// when the actor is a guest. domain.ErrNotFound means no cart yet.
func (s *Service) Resolve(ctx context.Context, actor domain.Actor, anonymousID string) (*domain.Cart, error) {
	if actor.Authenticated() {
		return s.repo.GetActiveByCustomer(ctx, actor.CustomerID())
	}
	if strings.TrimSpace(anonymousID) == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetActiveByAnonymous(ctx, anonymousID)
}

// AddItem puts a product in the actor's cart, creating the cart when none
// is active yet.
func (s *Service) AddItem(ctx context.Context, actor domain.Actor, anonymousID, slug string, quantity int) (*domain.Cart, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.New("product slug required")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, err
	}

	cart, err := s.Resolve(ctx, actor, anonymousID)
	if errors.Is(err, domain.ErrNotFound) {
		cart, err = s.create(ctx, actor, anonymousID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddItem(ctx, cart.ID, *product, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cart.ID)
}

// ChangeQuantity updates a line; zero or negative removes it.
func (s *Service) ChangeQuantity(ctx context.Context, actor domain.Actor, anonymousID, itemID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, errors.New("itemId required")
	}
	cart, err := s.Resolve(ctx, actor, anonymousID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ChangeItemQuantity(ctx, cart.ID, itemID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, cart.ID)
}

// Clear empties the actor's cart.
func (s *Service) Clear(ctx context.Context, actor domain.Actor, anonymousID string) error {
	cart, err := s.Resolve(ctx, actor, anonymousID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}

// ClearByID empties a specific cart, used after order confirmation.
func (s *Service) ClearByID(ctx context.Context, cartID string) error {
	return s.repo.Clear(ctx, cartID)
}

// AttachCustomer binds an anonymous cart to a freshly created account.
func (s *Service) AttachCustomer(ctx context.Context, cartID, customerID string) error {
	return s.repo.AssignCustomer(ctx, cartID, customerID)
}

func (s *Service) create(ctx context.Context, actor domain.Actor, anonymousID string) (*domain.Cart, error) {
	in := cartrepo.CreateCartInput{}
	if actor.Authenticated() {
		id := actor.CustomerID()
		in.CustomerID = &id
	} else {
		anonymousID = strings.TrimSpace(anonymousID)
		if anonymousID == "" {
			return nil, errors.New("anonymous id required")
		}
		in.AnonymousID = &anonymousID
	}
	return s.repo.Create(ctx, in)
}
