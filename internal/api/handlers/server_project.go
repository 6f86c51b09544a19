package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"canvaspilot.io/canvaspilot/internal/service"
)

// ListProjects handles GET /projects?page=&size=.
func (s *Server) ListProjects(c *gin.Context) {
	page := intQuery(c, "page", 1)
	size := intQuery(c, "size", 0)

	out, err := s.projects.List(c.Request.Context(), page, size)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListMyProjects handles GET /projects/me.
func (s *Server) ListMyProjects(c *gin.Context) {
	out, err := s.projects.ListMine(c.Request.Context(), s.actor(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": out})
}

// GetProject handles GET /projects/:projectId.
func (s *Server) GetProject(c *gin.Context) {
	id, err := idParam(c, "projectId")
	if err != nil {
		c.Error(err)
		return
	}

	out, err := s.projects.Get(c.Request.Context(), s.actor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CreateProject handles POST /projects.
func (s *Server) CreateProject(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindErr(err))
		return
	}

	out, err := s.projects.Create(c.Request.Context(), s.actor(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// PatchProject handles PATCH /projects/:projectId.
func (s *Server) PatchProject(c *gin.Context) {
	id, err := idParam(c, "projectId")
	if err != nil {
		c.Error(err)
		return
	}

	var req service.PatchProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindErr(err))
		return
	}

	out, err := s.projects.Patch(c.Request.Context(), s.actor(c), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteProject handles DELETE /projects/:projectId.
func (s *Server) DeleteProject(c *gin.Context) {
	id, err := idParam(c, "projectId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := s.projects.Delete(c.Request.Context(), s.actor(c), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
