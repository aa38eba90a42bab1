package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tsrfashion-backend/internal/domain"
)

func recentOrdersHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.Recent(c.Request.Context(), actorFrom(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list orders"})
			return
		}
		if list == nil {
			list = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
	}
}

func trackOrderHandler(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.Track(c.Request.Context(), actorFrom(c), c.Param("number"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
