package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"canvaspilot.io/canvaspilot/internal/service"
)

// ListProjectObjects handles GET /projects/:projectId/objects.
func (s *Server) ListProjectObjects(c *gin.Context) {
	projectID, err := idParam(c, "projectId")
	if err != nil {
		c.Error(err)
		return
	}

	out, err := s.objects.ListInProject(c.Request.Context(), s.actor(c), projectID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"objects": out})
}

// GetObject handles GET /objects/:objectId.
func (s *Server) GetObject(c *gin.Context) {
	id, err := idParam(c, "objectId")
	if err != nil {
		c.Error(err)
		return
	}

	out, err := s.objects.Get(c.Request.Context(), s.actor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CreateObject handles POST /objects.
func (s *Server) CreateObject(c *gin.Context) {
	var req service.CreateObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindErr(err))
		return
	}

	out, err := s.objects.Create(c.Request.Context(), s.actor(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PatchObject handles PATCH /objects/:objectId.
func (s *Server) PatchObject(c *gin.Context) {
	id, err := idParam(c, "objectId")
	if err != nil {
		c.Error(err)
		return
	}

	var req service.PatchObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindErr(err))
		return
	}

	out, err := s.objects.Patch(c.Request.Context(), s.actor(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteObject handles DELETE /objects/:objectId.
func (s *Server) DeleteObject(c *gin.Context) {
	id, err := idParam(c, "objectId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := s.objects.Delete(c.Request.Context(), s.actor(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
