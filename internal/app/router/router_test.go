package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasure_backend/internal/feature/target/domain/catalog"
	targetentity "treasure_backend/internal/feature/target/domain/entity"
	targethandler "treasure_backend/internal/feature/target/transport/handler"
	targetusecase "treasure_backend/internal/feature/target/usecase"
	"treasure_backend/internal/feature/validation/domain/entity"
	validationhandler "treasure_backend/internal/feature/validation/transport/handler"
	"treasure_backend/internal/platform/http/handler"
)

type stubValidator struct{}

func (stubValidator) Validate(ctx context.Context, image []byte, target targetentity.Target) entity.Verdict {
	return entity.Verdict{IsValid: true, Confidence: 0.9, Message: "ok", DetectedClasses: []string{"door"}, ProcessorTag: "stub"}
}

func newTestRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	targets := targetusecase.NewTargetUsecase(catalog.MustLoad())
	return NewRouter(
		handler.NewHealthHandler(nil),
		targethandler.NewTargetHandler(targets),
		validationhandler.NewValidationHandler(targets, stubValidator{}, 1024),
		origins,
	)
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(nil)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{name: "health head", method: http.MethodHead, path: "/healthz", wantStatus: http.StatusOK},
		{name: "list targets", method: http.MethodGet, path: "/v1/targets", wantStatus: http.StatusOK},
		{name: "get target", method: http.MethodGet, path: "/v1/targets/leaf", wantStatus: http.StatusOK},
		{name: "unknown target", method: http.MethodGet, path: "/v1/targets/unicorn", wantStatus: http.StatusNotFound},
		{name: "unknown route", method: http.MethodGet, path: "/v1/found-items", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_Validate(t *testing.T) {
	r := newTestRouter(nil)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", "door.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/targets/blue-door/validate", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "blue-door", got["target_id"])
	assert.Equal(t, true, got["is_valid"])
	assert.Equal(t, "stub", got["processor_tag"])
}

func TestRouter_CORS(t *testing.T) {
	r := newTestRouter([]string{"https://hunt.example.com"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/targets", nil)
	req.Header.Set("Origin", "https://hunt.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://hunt.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/targets", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)

	cfg := corsConfig([]string{"https://a.example.com"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example.com"}, cfg.AllowOrigins)
}
