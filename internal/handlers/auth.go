package handlers

import (
	"context"
	"errors"
	"net/http"

	"todoapi/internal/models"
	"todoapi/internal/store"
	"todoapi/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserStore is the persistence the auth handlers depend on.
type UserStore interface {
	Create(ctx context.Context, input models.NewUser) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// TokenIssuer signs a bearer token for a user.
type TokenIssuer interface {
	Issue(userID int) (string, error)
}

// AuthHandler issues tokens for new and returning users.
type AuthHandler struct {
	users  UserStore
	tokens TokenIssuer
}

func NewAuthHandler(users UserStore, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Signup handles user registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c)
		return
	}

	user, err := h.users.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Account created successfully",
		"auth_token": token,
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), credentials.Email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if !utils.CheckPasswordHash(credentials.Password, user.PasswordDigest) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}
