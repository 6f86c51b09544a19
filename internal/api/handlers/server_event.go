package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"canvaspilot.io/canvaspilot/internal/service"
)

// GetEvent handles GET /events/:eventId.
func (s *Server) GetEvent(c *gin.Context) {
	id, err := idParam(c, "eventId")
	if err != nil {
		c.Error(err)
		return
	}

	out, err := s.events.Get(c.Request.Context(), s.actor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CreateEvent handles POST /events.
func (s *Server) CreateEvent(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindErr(err))
		return
	}

	out, err := s.events.Create(c.Request.Context(), s.actor(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PatchEvent handles PATCH /events/:eventId.
func (s *Server) PatchEvent(c *gin.Context) {
	id, err := idParam(c, "eventId")
	if err != nil {
		c.Error(err)
		return
	}

	var req service.PatchEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindErr(err))
		return
	}

	out, err := s.events.Patch(c.Request.Context(), s.actor(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteEvent handles DELETE /events/:eventId.
func (s *Server) DeleteEvent(c *gin.Context) {
	id, err := idParam(c, "eventId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := s.events.Delete(c.Request.Context(), s.actor(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
