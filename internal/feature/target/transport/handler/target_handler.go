// Package handler はtargetフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"treasure_backend/internal/feature/target/domain"
	"treasure_backend/internal/feature/target/domain/entity"
	"treasure_backend/internal/feature/target/transport/http/dto"
)

// TargetUsecase はターゲット情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TargetUsecase interface {
	ListTargets(ctx context.Context) ([]entity.Target, error)
	GetTarget(ctx context.Context, id string) (entity.Target, error)
}

// TargetHandler はターゲット情報に関するHTTPリクエストを処理します。
type TargetHandler struct {
	uc TargetUsecase
}

// NewTargetHandler は新しい TargetHandler を作成します。
func NewTargetHandler(uc TargetUsecase) *TargetHandler {
	return &TargetHandler{uc: uc}
}

// List はターゲット一覧を返します。
//
// エンドポイント: GET /v1/targets
func (h *TargetHandler) List(c *gin.Context) {
	targets, err := h.uc.ListTargets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.TargetItem, 0, len(targets))
	for _, t := range targets {
		out = append(out, ToItem(t))
	}
	c.JSON(http.StatusOK, out)
}

// Get は指定IDのターゲットを返します。存在しない場合は404を返します。
//
// エンドポイント: GET /v1/targets/:id
func (h *TargetHandler) Get(c *gin.Context) {
	t, err := h.uc.GetTarget(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "target not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ToItem(t))
}

// ToItem はエンティティをレスポンスDTOに変換します。
func ToItem(t entity.Target) dto.TargetItem {
	return dto.TargetItem{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		Category:      t.Category,
		Icon:          t.Icon,
		ExpectedColor: string(t.ExpectedColor),
	}
}
