// Package handler はvalidationフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	targetdomain "treasure_backend/internal/feature/target/domain"
	targetentity "treasure_backend/internal/feature/target/domain/entity"
	"treasure_backend/internal/feature/validation/domain/entity"
	"treasure_backend/internal/feature/validation/transport/http/dto"
	"treasure_backend/internal/platform/http/middleware"
)

// multipartOverhead はフォームの境界やフィールド分としてボディ上限に上乗せするバイト数です。
const multipartOverhead = 1 << 20

// TargetLookup はIDからターゲットを取得します。
type TargetLookup interface {
	GetTarget(ctx context.Context, id string) (targetentity.Target, error)
}

// ValidationUsecase は画像がターゲットを満たすかを判定します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ValidationUsecase interface {
	Validate(ctx context.Context, image []byte, target targetentity.Target) entity.Verdict
}

// ValidationHandler は撮影画像の検証リクエストを処理します。
type ValidationHandler struct {
	targets  TargetLookup
	uc       ValidationUsecase
	maxBytes int64
}

// NewValidationHandler はValidationHandlerの新しいインスタンスを生成します。
// maxBytes はアップロード画像の最大サイズです。
func NewValidationHandler(targets TargetLookup, uc ValidationUsecase, maxBytes int64) *ValidationHandler {
	return &ValidationHandler{targets: targets, uc: uc, maxBytes: maxBytes}
}

// Validate は画像をアップロードしてターゲットを満たすか判定します。
// 不合格の場合も判定結果として200を返します。
//
// エンドポイント: POST /v1/targets/:id/validate
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル）、expected_color（任意、カタログの色を上書き）
func (h *ValidationHandler) Validate(c *gin.Context) {
	log := logrus.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"target":     c.Param("id"),
	})

	target, err := h.targets.GetTarget(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, targetdomain.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "target not found"})
			return
		}
		log.WithError(err).Error("target lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "target lookup failed"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	file, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
			return
		}
		log.WithError(err).Warn("image file missing from request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		log.WithError(err).Error("failed to open image file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("failed to close image file")
		}
	}()

	image, err := io.ReadAll(f)
	if err != nil {
		log.WithError(err).Error("failed to read image data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	if color := strings.ToLower(strings.TrimSpace(c.PostForm("expected_color"))); color != "" {
		target.ExpectedColor = targetentity.ColorName(color)
	}

	v := h.uc.Validate(c.Request.Context(), image, target)

	c.JSON(http.StatusOK, ToResponse(target.ID, v))
}

// ToResponse は判定結果をレスポンスDTOに変換します。
func ToResponse(targetID string, v entity.Verdict) dto.VerdictResponse {
	detected := v.DetectedClasses
	if detected == nil {
		detected = []string{}
	}
	return dto.VerdictResponse{
		TargetID:        targetID,
		IsValid:         v.IsValid,
		Confidence:      v.Confidence,
		Message:         v.Message,
		DetectedClasses: detected,
		ProcessorTag:    v.ProcessorTag,
	}
}
