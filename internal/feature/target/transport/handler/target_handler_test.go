package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"treasure_backend/internal/feature/target/domain"
	"treasure_backend/internal/feature/target/domain/entity"
	"treasure_backend/internal/feature/target/transport/handler"
)

// mockTargetUsecase はTargetUsecaseインターフェースのモック実装です。
type mockTargetUsecase struct {
	ListTargetsFunc func(ctx context.Context) ([]entity.Target, error)
	GetTargetFunc   func(ctx context.Context, id string) (entity.Target, error)
}

func (m *mockTargetUsecase) ListTargets(ctx context.Context) ([]entity.Target, error) {
	return m.ListTargetsFunc(ctx)
}

func (m *mockTargetUsecase) GetTarget(ctx context.Context, id string) (entity.Target, error) {
	return m.GetTargetFunc(ctx, id)
}

func TestTargetHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockFunc       func(ctx context.Context) ([]entity.Target, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: targets listed",
			mockFunc: func(ctx context.Context) ([]entity.Target, error) {
				return []entity.Target{
					{ID: "leaf", Name: "Hoja Roja", Category: "nature", Icon: "leaf", ExpectedColor: "red"},
					{ID: "animal", Name: "Animal Salvaje"},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `[{"id":"leaf","name":"Hoja Roja","category":"nature","icon":"leaf","expected_color":"red"},
				{"id":"animal","name":"Animal Salvaje"}]`,
		},
		{
			name: "error: usecase returns error",
			mockFunc: func(ctx context.Context) ([]entity.Target, error) {
				return nil, errors.New("catalog unavailable")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"catalog unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewTargetHandler(&mockTargetUsecase{ListTargetsFunc: tt.mockFunc})

			router := gin.New()
			router.GET("/v1/targets", h.List)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/v1/targets", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestTargetHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockTargetUsecase{
		GetTargetFunc: func(ctx context.Context, id string) (entity.Target, error) {
			if id == "blue-door" {
				return entity.Target{ID: "blue-door", Name: "Puerta Azul", ExpectedColor: "blue"}, nil
			}
			return entity.Target{}, fmt.Errorf("%w: %q", domain.ErrTargetNotFound, id)
		},
	}
	h := handler.NewTargetHandler(mockUC)

	router := gin.New()
	router.GET("/v1/targets/:id", h.Get)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success: known target",
			path:           "/v1/targets/blue-door",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":"blue-door","name":"Puerta Azul","expected_color":"blue"}`,
		},
		{
			name:           "error: unknown target",
			path:           "/v1/targets/rock",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"target not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
