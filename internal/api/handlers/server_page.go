package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"canvaspilot.io/canvaspilot/internal/service"
)

// GetPage handles GET /pages/:pageId.
func (s *Server) GetPage(c *gin.Context) {
	id, err := idParam(c, "pageId")
	if err != nil {
		c.Error(err)
		return
	}

	out, err := s.pages.Get(c.Request.Context(), s.actor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CreatePage handles POST /pages.
func (s *Server) CreatePage(c *gin.Context) {
	var req service.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindErr(err))
		return
	}

	out, err := s.pages.Create(c.Request.Context(), s.actor(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PatchPage handles PATCH /pages/:pageId.
func (s *Server) PatchPage(c *gin.Context) {
	id, err := idParam(c, "pageId")
	if err != nil {
		c.Error(err)
		return
	}

	var req service.PatchPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindErr(err))
		return
	}

	out, err := s.pages.Patch(c.Request.Context(), s.actor(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeletePage handles DELETE /pages/:pageId.
func (s *Server) DeletePage(c *gin.Context) {
	id, err := idParam(c, "pageId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := s.pages.Delete(c.Request.Context(), s.actor(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
