package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	apperrors "canvaspilot.io/canvaspilot/internal/pkg/errors"
	"canvaspilot.io/canvaspilot/internal/service"
)

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndLogin(t, "alice")

	w := env.do(t, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me service.UserSummary
	decodeBody(t, w, &me)
	require.Equal(t, "alice", me.UserID)

	// Without a token the same endpoint is unauthorized.
	w = env.do(t, http.MethodGet, "/api/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, apperrors.CodeUnauthorized, errorCode(t, w))
}

func TestSignupDuplicateHandleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.signupAndLogin(t, "alice")

	w := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"userId":   "alice",
		"username": "other",
		"email":    "other@example.com",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, apperrors.CodeDuplicateUserID, errorCode(t, w))
}

func TestProjectLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signupAndLogin(t, "alice")
	bob := env.signupAndLogin(t, "bob")

	w := env.do(t, http.MethodPost, "/api/v1/projects", alice, gin.H{"title": "pitch"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created service.ProjectDetail
	decodeBody(t, w, &created)

	projectPath := fmt.Sprintf("/api/v1/projects/%d", created.ID)

	// Owner reads it; a stranger gets the per-entity forbidden code.
	w = env.do(t, http.MethodGet, projectPath, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, projectPath, bob, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, apperrors.CodeNonAccessibleProject, errorCode(t, w))

	// Patch, then delete, then the id stops resolving.
	w = env.do(t, http.MethodPatch, projectPath, alice, gin.H{"title": "renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &created)
	require.Equal(t, "renamed", created.Title)

	w = env.do(t, http.MethodDelete, projectPath, alice, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, projectPath, alice, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, apperrors.CodeProjectNotFound, errorCode(t, w))
}

func TestMalformedIDParam(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndLogin(t, "alice")

	for _, path := range []string{
		"/api/v1/projects/abc",
		"/api/v1/pages/-1",
		"/api/v1/objects/0",
		"/api/v1/events/12.5",
	} {
		w := env.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		require.Equal(t, apperrors.CodeConstraintViolation, errorCode(t, w), path)
	}
}

func TestPageAndObjectOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndLogin(t, "alice")

	var project service.ProjectDetail
	w := env.do(t, http.MethodPost, "/api/v1/projects", token, gin.H{"title": "deck"})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeBody(t, w, &project)

	var page service.PageDetail
	w = env.do(t, http.MethodPost, "/api/v1/pages", token, gin.H{
		"projectId": project.ID,
		"name":      "intro",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decodeBody(t, w, &page)

	var object service.ObjectDetail
	w = env.do(t, http.MethodPost, "/api/v1/objects", token, gin.H{
		"pageId":    page.ID,
		"type":      "TEXT",
		"width":     200, "height": 80,
		"xPosition": 0, "yPosition": 0,
		"zIndex":      1,
		"textContent": "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decodeBody(t, w, &object)
	require.Equal(t, 1.0, object.Opacity)

	// Page detail now carries the object.
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/pages/%d", page.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &page)
	require.Len(t, page.Objects, 1)

	// Missing required geometry is a binding failure.
	w = env.do(t, http.MethodPost, "/api/v1/objects", token, gin.H{
		"pageId": page.ID,
		"type":   "TEXT",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, apperrors.CodeInvalidRequest, errorCode(t, w))

	// Project-wide object listing.
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/objects", project.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Objects []service.ObjectDetail `json:"objects"`
	}
	decodeBody(t, w, &listing)
	require.Len(t, listing.Objects, 1)
}

func TestEventGuardsOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.signupAndLogin(t, "alice")

	var project service.ProjectDetail
	w := env.do(t, http.MethodPost, "/api/v1/projects", token, gin.H{"title": "deck"})
	decodeBody(t, w, &project)

	var page service.PageDetail
	w = env.do(t, http.MethodPost, "/api/v1/pages", token, gin.H{"projectId": project.ID, "name": "intro"})
	decodeBody(t, w, &page)

	var object service.ObjectDetail
	w = env.do(t, http.MethodPost, "/api/v1/objects", token, gin.H{
		"pageId": page.ID, "type": "DEFAULT",
		"width": 10, "height": 10, "xPosition": 0, "yPosition": 0, "zIndex": 0,
	})
	decodeBody(t, w, &object)

	w = env.do(t, http.MethodPost, "/api/v1/events", token, gin.H{
		"objectId":       object.ID,
		"transitionType": "FADE",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var event service.EventSummary
	decodeBody(t, w, &event)

	// A second active event on the same object conflicts.
	w = env.do(t, http.MethodPost, "/api/v1/events", token, gin.H{
		"objectId":       object.ID,
		"transitionType": "NONE",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, apperrors.CodeMultipleEventAllocation, errorCode(t, w))

	// Deleting frees the slot.
	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/events/%d", event.ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/events", token, gin.H{
		"objectId":       object.ID,
		"transitionType": "SLIDE_LEFT",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestProjectListingsOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signupAndLogin(t, "alice")
	bob := env.signupAndLogin(t, "bob")

	for i := 0; i < 3; i++ {
		w := env.do(t, http.MethodPost, "/api/v1/projects", alice, gin.H{"title": fmt.Sprintf("a%d", i)})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := env.do(t, http.MethodPost, "/api/v1/projects", bob, gin.H{"title": "b0"})
	require.Equal(t, http.StatusCreated, w.Code)

	// The global listing is public.
	w = env.do(t, http.MethodGet, "/api/v1/projects?page=1&size=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var slice service.ProjectSlice
	decodeBody(t, w, &slice)
	require.Len(t, slice.Projects, 2)
	require.True(t, slice.HasNext)

	// The personal listing is scoped to the token and unpaginated.
	w = env.do(t, http.MethodGet, "/api/v1/projects/me", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine struct {
		Projects []service.ProjectSummary `json:"projects"`
	}
	decodeBody(t, w, &mine)
	require.Len(t, mine.Projects, 1)
	require.Equal(t, "b0", mine.Projects[0].Title)

	w = env.do(t, http.MethodGet, "/api/v1/projects/me", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &mine)
	require.Len(t, mine.Projects, 3, "all owned projects come back in one response")
}
