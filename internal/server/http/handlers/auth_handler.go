package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ashmarov/ticketgate/internal/domain/errors"
	"github.com/ashmarov/ticketgate/internal/domain/model"
	"github.com/ashmarov/ticketgate/internal/server/http/dto"
)

// AuthHandler processes login requests.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid payload"})
		return
	}

	role := model.Role(req.Role)
	if role != "" && !role.Valid() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "unknown role"})
		return
	}

	user, token, err := h.facade.Login(c.Request.Context(), req.LookupIdentifier(), req.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "identifier and password are required"})
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid credentials"})
		case errors.Is(err, domainErrors.ErrRoleMismatch):
			c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "role not permitted for this account"})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
			Role:     string(user.Role),
		},
	})
}
