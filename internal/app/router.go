package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"canvaspilot.io/canvaspilot/internal/api/handlers"
	"canvaspilot.io/canvaspilot/internal/api/middleware"
	"canvaspilot.io/canvaspilot/internal/config"
	"canvaspilot.io/canvaspilot/internal/ws"
)

func newRouter(cfg *config.Config, server *handlers.Server, dispatcher *ws.Dispatcher, jwtCfg middleware.JWTConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.ErrorHandler())

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	router.Use(cors.New(corsCfg))

	// The websocket endpoint upgrades without a token; each frame carries
	// its own.
	router.GET("/ws", ws.Handler(dispatcher, cfg.WS))

	v1 := router.Group("/api/v1")

	public := v1.Group("")
	{
		public.GET("/healthz", server.Health)
		public.POST("/auth/signup", server.Signup)
		public.POST("/auth/login", server.Login)
		public.GET("/projects", server.ListProjects)
	}

	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(jwtCfg.SigningKey))
	{
		authed.GET("/users/me", server.Me)

		authed.GET("/projects/me", server.ListMyProjects)
		authed.POST("/projects", server.CreateProject)
		authed.GET("/projects/:projectId", server.GetProject)
		authed.PATCH("/projects/:projectId", server.PatchProject)
		authed.DELETE("/projects/:projectId", server.DeleteProject)
		authed.GET("/projects/:projectId/objects", server.ListProjectObjects)

		authed.POST("/pages", server.CreatePage)
		authed.GET("/pages/:pageId", server.GetPage)
		authed.PATCH("/pages/:pageId", server.PatchPage)
		authed.DELETE("/pages/:pageId", server.DeletePage)

		authed.POST("/objects", server.CreateObject)
		authed.GET("/objects/:objectId", server.GetObject)
		authed.PATCH("/objects/:objectId", server.PatchObject)
		authed.DELETE("/objects/:objectId", server.DeleteObject)

		authed.POST("/events", server.CreateEvent)
		authed.GET("/events/:eventId", server.GetEvent)
		authed.PATCH("/events/:eventId", server.PatchEvent)
		authed.DELETE("/events/:eventId", server.DeleteEvent)
	}

	return router
}
