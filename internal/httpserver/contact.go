package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactsvc "tsrfashion-backend/internal/service/contact"
)

func contactHandler(contact contactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in contactsvc.SubmitInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		stored, fieldErrs, err := contact.Submit(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit message"})
			return
		}
		if len(fieldErrs) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"fieldErrors": fieldErrs})
			return
		}
		c.JSON(http.StatusCreated, stored)
	}
}
