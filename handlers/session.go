package handlers

import (
	"net/http"

	"courtbook/middleware"
	"courtbook/models"
	"courtbook/services/user"
	"courtbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler serves sign-in, registration and the current-user record.
type SessionHandler struct {
	UserService user.UserService
}

func NewSessionHandler(svc user.UserService) *SessionHandler {
	return &SessionHandler{UserService: svc}
}

// LoginHandler signs the user in and returns the session token.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	resp, err := h.UserService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	logger.Info("user signed in", zap.String("userID", resp.User.ID))
	c.JSON(http.StatusOK, resp)
}

// RegisterHandler creates an account. The user still has to sign in afterwards.
func (h *SessionHandler) RegisterHandler(c *gin.Context) {
	var form models.RegisterRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.UserService.Register(c.Request.Context(), form)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	getLogger(c).Info("user registered", zap.String("email", created.Email))
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful", "user": created, "redirect": "/login"})
}

// LogoutHandler ends the current session.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	if err := h.UserService.Logout(c.Request.Context(), middleware.SessionFrom(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": "/login"})
}

// MeHandler returns the cached current-user record.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		utils.RespondError(c, user.ErrSessionExpired)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.User, "signedInAt": sess.CreatedAt})
}
