package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tsrfashion-backend/internal/domain"
	checkoutsvc "tsrfashion-backend/internal/service/checkout"
)

func checkoutStateHandler(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := checkout.State(c.Request.Context(), actorFrom(c), anonymousID(c))
		c.JSON(http.StatusOK, state)
	}
}

func submitAddressHandler(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkoutsvc.ShippingForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		fieldErrs, err := checkout.SubmitAddress(c.Request.Context(), actorFrom(c), anonymousID(c), form)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save address"})
			return
		}
		if len(fieldErrs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"fieldErrors": fieldErrs})
			return
		}
		c.JSON(http.StatusOK, checkout.State(c.Request.Context(), actorFrom(c), anonymousID(c)))
	}
}

func editAddressHandler(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, checkout.EditAddress(actorFrom(c), anonymousID(c)))
	}
}

type confirmRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	Note          string `json:"note"`
}

func confirmHandler(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in confirmRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		number, err := checkout.Confirm(c.Request.Context(), actorFrom(c), anonymousID(c),
			in.PaymentMethod, in.Note, c.GetHeader(headerIdempotencyKey))
		if err != nil {
			switch {
			case errors.Is(err, checkoutsvc.ErrIdempotencyKeyRequired):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key header required"})
			case errors.Is(err, checkoutsvc.ErrShippingRequired):
				c.JSON(http.StatusConflict, gin.H{"error": "shipping address required", "step": checkoutsvc.StepAddress})
			case errors.Is(err, checkoutsvc.ErrPaymentRequired):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "payment method required"})
			case errors.Is(err, checkoutsvc.ErrConfirmInFlight):
				c.JSON(http.StatusConflict, gin.H{"error": "confirmation already in progress"})
			case errors.Is(err, domain.ErrEmptyCart):
				c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
			case errors.Is(err, domain.ErrAlreadyExists):
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered, log in to continue"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not place order"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"orderNumber": number})
	}
}
