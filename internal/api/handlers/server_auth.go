package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"canvaspilot.io/canvaspilot/internal/api/middleware"
	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"
	"canvaspilot.io/canvaspilot/internal/pkg/logger"
	"canvaspilot.io/canvaspilot/internal/service"
)

// LoginResponse is the token envelope returned on successful login.
type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	User      service.UserSummary `json:"user"`
}

// Signup handles POST /auth/signup.
func (s *Server) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindErr(err))
		return
	}

	out, err := s.users.Signup(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	logger.Info("account created", zap.String("handle", out.UserID))
	c.JSON(http.StatusCreated, out)
}

// Login handles POST /auth/login.
func (s *Server) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindErr(err))
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), req)
	if err != nil {
		logger.Warn("login failed: invalid credentials")
		c.Error(err)
		return
	}

	token, expiresAt, err := middleware.GenerateToken(s.jwtCfg, user.ID, user.UserID, nil)
	if err != nil {
		logger.Error("failed to generate token", zap.Error(err))
		c.Error(apperrors.ErrInternal(err, "generate token"))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      service.UserSummary{ID: user.ID, UserID: user.UserID, Username: user.Username},
	})
}

// Me handles GET /users/me.
func (s *Server) Me(c *gin.Context) {
	actor := s.actor(c)
	out, err := s.users.Get(c.Request.Context(), actor.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}
