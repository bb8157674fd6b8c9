// Package ollama はローカルのOllamaサーバー上のビジョンモデルを使用した画像Describerを提供します。
package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"

	"treasure_backend/internal/feature/validation/adapters/modeljson"
	"treasure_backend/internal/feature/validation/domain"
	"treasure_backend/internal/feature/validation/domain/entity"
	"treasure_backend/internal/feature/validation/usecase"
)

const (
	// DefaultURL はOllamaサーバーの既定URLです。
	DefaultURL = "http://localhost:11434"
	// DefaultModel は既定のビジョンモデルです。
	DefaultModel = "llava"
	// Tag はVerdictに記録されるプロセッサー識別子です。
	Tag = "ollama-vision"
)

// OllamaDescriber はOllamaのchat APIに画像を添付して説明を生成します。
type OllamaDescriber struct {
	client *api.Client
	model  string
}

// OllamaDescriberがDescriberを実装していることをコンパイル時に検証します。
var _ usecase.Describer = (*OllamaDescriber)(nil)

// NewOllamaDescriber はOllamaDescriberの新しいインスタンスを生成します。
// rawURLのパス部分（/api/chat など）は無視されます。
func NewOllamaDescriber(rawURL, model string, httpClient *http.Client) (*OllamaDescriber, error) {
	if rawURL == "" {
		rawURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid ollama url %q", domain.ErrDescriberUnavailable, rawURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	return &OllamaDescriber{client: api.NewClient(base, httpClient), model: model}, nil
}

// Tag はプロセッサー識別子を返します。
func (o *OllamaDescriber) Tag() string { return Tag }

// Describe は画像とプロンプトをJSONモードで送信し、応答をVisionDescriptionに変換します。
func (o *OllamaDescriber) Describe(ctx context.Context, req usecase.DescribeRequest) (*entity.VisionDescription, error) {
	stream := false
	chat := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: req.Prompt,
				Images:  []api.ImageData{api.ImageData(req.Image)},
			},
		},
		Stream:  &stream,
		Format:  json.RawMessage(`"json"`),
		Options: map[string]any{"temperature": 0.2},
	}

	var content string
	err := o.client.Chat(ctx, chat, func(resp api.ChatResponse) error {
		content += resp.Message.Content
		return nil
	})
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)
		}
		return nil, fmt.Errorf("ollama chat error: %w", err)
	}

	return modeljson.Parse(content)
}
