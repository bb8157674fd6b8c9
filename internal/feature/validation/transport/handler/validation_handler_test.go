package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	targetdomain "treasure_backend/internal/feature/target/domain"
	targetentity "treasure_backend/internal/feature/target/domain/entity"
	"treasure_backend/internal/feature/validation/domain/entity"
	"treasure_backend/internal/feature/validation/transport/handler"
)

// mockTargetLookup はTargetLookupインターフェースのモック実装です。
type mockTargetLookup struct{}

func (m *mockTargetLookup) GetTarget(ctx context.Context, id string) (targetentity.Target, error) {
	if id == "blue-door" {
		return targetentity.Target{ID: "blue-door", Name: "Puerta Azul", ExpectedColor: "blue"}, nil
	}
	return targetentity.Target{}, fmt.Errorf("%w: %s", targetdomain.ErrTargetNotFound, id)
}

// mockValidationUsecase はValidationUsecaseインターフェースのモック実装です。
type mockValidationUsecase struct {
	ValidateFunc func(ctx context.Context, image []byte, target targetentity.Target) entity.Verdict
	calls        int
}

func (m *mockValidationUsecase) Validate(ctx context.Context, image []byte, target targetentity.Target) entity.Verdict {
	m.calls++
	return m.ValidateFunc(ctx, image, target)
}

// createMultipartRequest はテスト用のマルチパートリクエストを生成するヘルパー関数です。
func createMultipartRequest(t *testing.T, path string, image []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if image != nil {
		part, err := writer.CreateFormFile("image", "photo.jpg")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(image)); err != nil {
			t.Fatalf("failed to copy content: %v", err)
		}
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, path, body)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestValidationHandler_Validate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	accept := func(ctx context.Context, image []byte, target targetentity.Target) entity.Verdict {
		return entity.Verdict{
			IsValid:         true,
			Confidence:      0.885,
			Message:         "door in " + string(target.ExpectedColor),
			DetectedClasses: []string{"door"},
			ProcessorTag:    "gemini-vision",
		}
	}
	reject := func(ctx context.Context, image []byte, target targetentity.Target) entity.Verdict {
		return entity.Verdict{Message: "analysis failed", ProcessorTag: "gemini-vision"}
	}

	tests := []struct {
		name           string
		request        func(t *testing.T) *http.Request
		mockFunc       func(ctx context.Context, image []byte, target targetentity.Target) entity.Verdict
		expectedStatus int
		expectedBody   string
		expectedCalls  int
	}{
		{
			name: "success: accepted",
			request: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "/v1/targets/blue-door/validate", []byte("fake-image"), nil)
			},
			mockFunc:       accept,
			expectedStatus: http.StatusOK,
			expectedBody: `{"target_id":"blue-door","is_valid":true,"confidence":0.885,"message":"door in blue",
				"detected_classes":["door"],"processor_tag":"gemini-vision"}`,
			expectedCalls: 1,
		},
		{
			name: "success: expected_color overrides catalog color",
			request: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "/v1/targets/blue-door/validate", []byte("fake-image"),
					map[string]string{"expected_color": " RED "})
			},
			mockFunc:       accept,
			expectedStatus: http.StatusOK,
			expectedBody: `{"target_id":"blue-door","is_valid":true,"confidence":0.885,"message":"door in red",
				"detected_classes":["door"],"processor_tag":"gemini-vision"}`,
			expectedCalls: 1,
		},
		{
			name: "success: rejection is still 200",
			request: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "/v1/targets/blue-door/validate", []byte("fake-image"), nil)
			},
			mockFunc:       reject,
			expectedStatus: http.StatusOK,
			expectedBody: `{"target_id":"blue-door","is_valid":false,"confidence":0,"message":"analysis failed",
				"detected_classes":[],"processor_tag":"gemini-vision"}`,
			expectedCalls: 1,
		},
		{
			name: "error: unknown target",
			request: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "/v1/targets/unicorn/validate", []byte("fake-image"), nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"target not found"}`,
		},
		{
			name: "error: no image field",
			request: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "/v1/targets/blue-door/validate", nil, map[string]string{"expected_color": "red"})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"image file is required"}`,
		},
		{
			name: "error: image too large",
			request: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "/v1/targets/blue-door/validate", make([]byte, 65), nil)
			},
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedBody:   `{"error":"image too large"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockValidationUsecase{ValidateFunc: tt.mockFunc}
			h := handler.NewValidationHandler(&mockTargetLookup{}, uc, 64)

			router := gin.New()
			router.POST("/v1/targets/:id/validate", h.Validate)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, tt.request(t))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectedCalls, uc.calls)
		})
	}
}
