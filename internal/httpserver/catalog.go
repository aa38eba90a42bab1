package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tsrfashion-backend/internal/domain"
)

func listProductsHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context(), c.Query("category"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list, "count": len(list)})
	}
}

func getProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
