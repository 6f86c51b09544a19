package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"canvaspilot.io/canvaspilot/internal/api/middleware"
	"canvaspilot.io/canvaspilot/internal/pkg/logger"
	"canvaspilot.io/canvaspilot/internal/service"
	"canvaspilot.io/canvaspilot/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("error", "json")
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	jwtCfg middleware.JWTConfig
}

// newTestEnv wires the full handler stack over an in-memory database,
// mirroring the production route table.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.OpenGormDB(t)

	jwtCfg := middleware.JWTConfig{
		SigningKey: []byte("handler-test-key-1234567890123456"),
		Issuer:     "canvaspilot",
		ExpiresIn:  time.Hour,
	}

	server := NewServer(ServerDeps{
		JWTCfg:   jwtCfg,
		Users:    service.NewUserService(db),
		Projects: service.NewProjectService(db),
		Pages:    service.NewPageService(db),
		Objects:  service.NewObjectService(db),
		Events:   service.NewEventService(db),
	})

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.GET("/healthz", server.Health)
	v1.POST("/auth/signup", server.Signup)
	v1.POST("/auth/login", server.Login)
	v1.GET("/projects", server.ListProjects)

	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(jwtCfg.SigningKey))
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

	return &testEnv{router: router, db: db, jwtCfg: jwtCfg}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signupAndLogin registers a fresh account and returns its token.
func (e *testEnv) signupAndLogin(t *testing.T, handle string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"userId":   handle,
		"username": handle,
		"email":    handle + "@example.com",
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"userId":   handle,
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		ErrorCode int `json:"error_code"`
	}
	decodeBody(t, w, &body)
	return body.ErrorCode
}
