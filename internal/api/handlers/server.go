// Package handlers implements the REST endpoints.
//
// Handlers bind and validate input, delegate to the service layer and push
// failures through c.Error() to the centralized ErrorHandler middleware.
// No business rule lives here.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"canvaspilot.io/canvaspilot/internal/api/middleware"
	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"
	"canvaspilot.io/canvaspilot/internal/service"
)

// Server holds all handler dependencies.
type Server struct {
	jwtCfg middleware.JWTConfig

	users    *service.UserService
	projects *service.ProjectService
	pages    *service.PageService
	objects  *service.ObjectService
	events   *service.EventService
}

// ServerDeps holds all dependencies for creating a Server. Manual DI, no
// framework.
type ServerDeps struct {
	JWTCfg middleware.JWTConfig

	Users    *service.UserService
	Projects *service.ProjectService
	Pages    *service.PageService
	Objects  *service.ObjectService
	Events   *service.EventService
}

// NewServer creates a new Server with all dependencies.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		jwtCfg:   deps.JWTCfg,
		users:    deps.Users,
		projects: deps.Projects,
		pages:    deps.Pages,
		objects:  deps.Objects,
		events:   deps.Events,
	}
}

// actor builds the service-layer caller identity from the authenticated
// request context.
func (s *Server) actor(c *gin.Context) service.Actor {
	ctx := c.Request.Context()
	return service.Actor{
		ID:     middleware.GetAccountID(ctx),
		Handle: middleware.GetHandle(ctx),
		Roles:  middleware.GetRoles(ctx),
	}
}

// idParam parses a positive int64 path parameter. Anything else is a
// constraint violation, not a not-found.
func idParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrConstraintViolation(name + " must be a positive integer")
	}
	return id, nil
}

// intQuery parses an optional non-negative integer query parameter.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func bindErr(err error) error {
	return apperrors.BadRequest(apperrors.CodeInvalidRequest, "invalid request body", err.Error())
}
