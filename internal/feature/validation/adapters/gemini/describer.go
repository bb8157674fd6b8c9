// Package gemini はGoogle Gemini APIを使用した画像Describerを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"treasure_backend/internal/feature/validation/adapters/modeljson"
	"treasure_backend/internal/feature/validation/domain"
	"treasure_backend/internal/feature/validation/domain/entity"
	"treasure_backend/internal/feature/validation/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// Tag はVerdictに記録されるプロセッサー識別子です。
	Tag = "gemini-vision"
	// defaultMIMEType は画像準備を経ていない場合に使うMIMEタイプです。
	defaultMIMEType = "image/jpeg"
)

// Config はGeminiDescriberの設定です。
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string       // テスト用。空なら既定のエンドポイント
	HTTPClient *http.Client // nilならgenaiの既定クライアント
}

// GeminiDescriber はGemini APIのマルチモーダル生成で画像を説明します。
type GeminiDescriber struct {
	client *genai.Client
	model  string
}

// GeminiDescriberがDescriberを実装していることをコンパイル時に検証します。
var _ usecase.Describer = (*GeminiDescriber)(nil)

// NewGeminiDescriber はAPIキーを使用してGeminiDescriberの新しいインスタンスを生成します。
func NewGeminiDescriber(ctx context.Context, cfg Config) (*GeminiDescriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is not set", domain.ErrDescriberUnavailable)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", domain.ErrDescriberUnavailable, err)
	}
	return &GeminiDescriber{client: client, model: cfg.Model}, nil
}

// Tag はプロセッサー識別子を返します。
func (g *GeminiDescriber) Tag() string { return Tag }

// Describe は画像とプロンプトを送信し、JSONの応答をVisionDescriptionに変換します。
func (g *GeminiDescriber) Describe(ctx context.Context, req usecase.DescribeRequest) (*entity.VisionDescription, error) {
	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = defaultMIMEType
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(req.Image, mimeType),
			genai.NewPartFromText(req.Prompt),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)
		}
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}

	return modeljson.Parse(resp.Text())
}
