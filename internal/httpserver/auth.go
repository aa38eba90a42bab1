package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tsrfashion-backend/internal/domain"
	authsvc "tsrfashion-backend/internal/service/auth"
)

type tokenResponse struct {
	Customer     *domain.Customer `json:"customer"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	ExpiresIn    int              `json:"expiresIn"`
}

func signupHandler(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in authsvc.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		customer, err := auth.Signup(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		access, refresh, err := auth.IssueTokens(c.Request.Context(), customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue tokens"})
			return
		}

		c.JSON(http.StatusCreated, tokenResponse{
			Customer:     customer,
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    auth.AccessTTLSeconds(),
		})
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}

		customer, access, refresh, err := auth.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}

		c.JSON(http.StatusOK, tokenResponse{
			Customer:     customer,
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    auth.AccessTTLSeconds(),
		})
	}
}

func logoutHandler(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if err := auth.Logout(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func meHandler(profiles profileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		out := gin.H{"customer": actor.Customer}
		if profile, err := profiles.Load(c.Request.Context(), actor); err == nil {
			out["profile"] = profile
		}
		c.JSON(http.StatusOK, out)
	}
}

type updateProfileRequest struct {
	FullName string                  `json:"fullName"`
	Phone    string                  `json:"phone"`
	Shipping *domain.ShippingDetails `json:"shipping"`
}

func updateProfileHandler(auth authService, profiles profileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in updateProfileRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		actor := actorFrom(c)
		customer, err := auth.UpdateProfileFields(c.Request.Context(), actor.CustomerID(), in.FullName, in.Phone)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
			return
		}

		out := gin.H{"customer": customer}
		if in.Shipping != nil {
			profile, err := profiles.Sync(c.Request.Context(), actor, *in.Shipping)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save shipping profile"})
				return
			}
			out["profile"] = profile
		}
		c.JSON(http.StatusOK, out)
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func changePasswordHandler(auth authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in changePasswordRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "current and new password required"})
			return
		}

		err := auth.ChangePassword(c.Request.Context(), actorFrom(c).CustomerID(), in.CurrentPassword, in.NewPassword)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
