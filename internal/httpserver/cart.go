package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tsrfashion-backend/internal/domain"
)

type cartResponse struct {
	Cart          *domain.Cart `json:"cart"`
	TotalAmount   int64        `json:"totalAmount"`
	TotalQuantity int          `json:"totalQuantity"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	if cart == nil {
		cart = &domain.Cart{Items: []domain.CartItem{}}
	}
	return cartResponse{
		Cart:          cart,
		TotalAmount:   cart.TotalAmount(),
		TotalQuantity: cart.TotalQuantity(),
	}
}

func getCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Resolve(c.Request.Context(), actorFrom(c), anonymousID(c))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusOK, toCartResponse(nil))
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

type addItemRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Quantity int    `json:"quantity"`
}

func addCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug required"})
			return
		}
		if in.Quantity == 0 {
			in.Quantity = 1
		}

		cart, err := carts.AddItem(c.Request.Context(), actorFrom(c), anonymousID(c), in.Slug, in.Quantity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

type changeQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func changeCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in changeQuantityRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}

		cart, err := carts.ChangeQuantity(c.Request.Context(), actorFrom(c), anonymousID(c), c.Param("itemID"), in.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func clearCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), actorFrom(c), anonymousID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
