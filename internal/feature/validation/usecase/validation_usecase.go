// Package usecase はvalidationフィーチャーのビジネスロジック（ターゲット検証エンジン）を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	targetentity "treasure_backend/internal/feature/target/domain/entity"
	"treasure_backend/internal/feature/validation/domain"
	"treasure_backend/internal/feature/validation/domain/entity"
)

// DefaultTimeout はDescriber呼び出しの既定タイムアウトです。
const DefaultTimeout = 30 * time.Second

// quotaMarkers はクォータ超過を示すエラー文字列の目印です（小文字で比較します）。
var quotaMarkers = []string{"quota", "resource_exhausted", "límite", "rate limit"}

// DescribeRequest はDescriberへの1回分のリクエストです。
type DescribeRequest struct {
	Image         []byte
	MIMEType      string
	Prompt        string
	TargetID      string
	ExpectedColor targetentity.ColorName
}

// Describer は画像を構造化された説明に変換する外部ビジョンモデルです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Describer interface {
	// Describe は画像の説明を返します。ctxのキャンセルに従う必要があります。
	Describe(ctx context.Context, req DescribeRequest) (*entity.VisionDescription, error)
	// Tag はVerdictのProcessorTagに使う識別子を返します。
	Tag() string
}

// ImagePreparer はDescriberへ送る前に画像を縮小・再エンコードします。
type ImagePreparer interface {
	// Prepare は送信用の画像とMIMEタイプを返します。失敗時は元の画像を返します。
	Prepare(data []byte) ([]byte, string)
}

// TargetCatalog はキーワード辞書と表示用テキストを提供します。
type TargetCatalog interface {
	KeywordSource
	IsColorIrrelevant(targetID string) bool
	ColorDisplay(name targetentity.ColorName, locale string) string
	TargetColorDisplay(targetID, locale string) string
}

// Config は検証エンジンの設定です。
type Config struct {
	Timeout time.Duration // Describer呼び出しのタイムアウト（0ならDefaultTimeout）
	Locale  string        // メッセージのロケール（"en" / "es"）
}

// Validator は撮影画像の判定エンジンです。
type Validator interface {
	Validate(ctx context.Context, image []byte, target targetentity.Target) entity.Verdict
}

var _ Validator = (*validationUsecase)(nil)

// validationUsecase は撮影画像がターゲットを満たすかを判定します。
// 呼び出し間で共有される可変状態は持ちません。
type validationUsecase struct {
	describer Describer
	preparer  ImagePreparer
	catalog   TargetCatalog
	resolver  *KeywordResolver
	timeout   time.Duration
	locale    string
}

// NewValidationUsecase はvalidationUsecaseの新しいインスタンスを生成します。
// preparerがnilの場合、画像はそのまま送信されます。
func NewValidationUsecase(d Describer, p ImagePreparer, c TargetCatalog, cfg Config) *validationUsecase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if !SupportedLocale(cfg.Locale) {
		cfg.Locale = DefaultLocale
	}
	return &validationUsecase{
		describer: d,
		preparer:  p,
		catalog:   c,
		resolver:  NewKeywordResolver(c),
		timeout:   cfg.Timeout,
		locale:    cfg.Locale,
	}
}

// Validate は画像がターゲットを満たすかを判定します。
// エラーを返すことはなく、すべての失敗は不合格のVerdictに変換されます。
func (u *validationUsecase) Validate(ctx context.Context, image []byte, target targetentity.Target) entity.Verdict {
	msgs := messagesFor(u.locale)
	log := logrus.WithFields(logrus.Fields{
		"target":         target.ID,
		"expected_color": string(target.ExpectedColor),
		"processor":      u.describer.Tag(),
	})

	desc, err := u.describe(ctx, image, target)
	if err != nil {
		if isQuotaError(err) {
			log.WithError(err).Warn("describer quota reached")
			return u.rejected(msgs.quotaReached)
		}
		log.WithError(err).Error("image analysis failed")
		return u.rejected(msgs.analysisFailed)
	}

	objectKeywords := u.resolver.ObjectKeywords(target.ID)
	colorKeywords := u.resolver.ColorKeywords(target.ID, target.ExpectedColor)

	objectMatch := ObjectMatches(desc, objectKeywords)
	colorMatch := ColorMatches(desc, colorKeywords)
	mode := SelectMode(target.HasExpectedColor(), desc.ColorMatters, u.catalog.IsColorIrrelevant(target.ID))
	decision := Decide(mode, objectMatch, colorMatch, desc.ObjectConfidence, desc.ColorConfidence)

	message := msgs.buildMessage(decision.Outcome, desc.MainObject, desc.DominantColor, u.expectedColorDisplay(target, msgs))

	log.WithFields(logrus.Fields{
		"valid":         decision.IsValid,
		"confidence":    fmt.Sprintf("%.0f%%", decision.Confidence*100),
		"main_object":   desc.MainObject,
		"color":         desc.DominantColor,
		"mode":          decision.Mode.String(),
		"object_match":  objectMatch,
		"color_match":   colorMatch,
		"color_reason":  desc.ColorReason,
		"object_reason": desc.ObjectReason,
	}).Info("validation completed")

	detected := make([]string, len(desc.AllObjects))
	copy(detected, desc.AllObjects)

	return entity.Verdict{
		IsValid:         decision.IsValid,
		Confidence:      decision.Confidence,
		Message:         message,
		DetectedClasses: detected,
		ProcessorTag:    u.describer.Tag(),
	}
}

// describe は画像を準備し、タイムアウトとの競争でDescriberを呼び出します。
// 先に決着した方が結果となり、タイムアウトはDescriberの失敗として扱います。
func (u *validationUsecase) describe(ctx context.Context, image []byte, target targetentity.Target) (*entity.VisionDescription, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image data is empty", domain.ErrMalformedResponse)
	}

	data, mimeType := image, ""
	if u.preparer != nil {
		data, mimeType = u.preparer.Prepare(image)
	}

	req := DescribeRequest{
		Image:         data,
		MIMEType:      mimeType,
		Prompt:        BuildPrompt(target.ID, target.ExpectedColor),
		TargetID:      target.ID,
		ExpectedColor: target.ExpectedColor,
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	type result struct {
		desc *entity.VisionDescription
		err  error
	}
	done := make(chan result, 1)
	go func() {
		// Describerのpanicは失敗として返す
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: describer panicked: %v", domain.ErrDescriberUnavailable, r)}
			}
		}()
		d, err := u.describer.Describe(ctx, req)
		done <- result{desc: d, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		if r.desc == nil {
			return nil, fmt.Errorf("%w: empty description", domain.ErrMalformedResponse)
		}
		return r.desc, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w after %s: %v", domain.ErrDescriberTimeout, u.timeout, ctx.Err())
	}
}

// expectedColorDisplay は色不一致メッセージに表示する期待色を返します。
func (u *validationUsecase) expectedColorDisplay(target targetentity.Target, msgs messageSet) string {
	if target.HasExpectedColor() {
		if d := u.catalog.ColorDisplay(target.ExpectedColor, u.locale); d != "" {
			return d
		}
		return string(target.ExpectedColor)
	}
	if d := u.catalog.TargetColorDisplay(target.ID, u.locale); d != "" {
		return d
	}
	return msgs.expectedFallback
}

func (u *validationUsecase) rejected(message string) entity.Verdict {
	return entity.Verdict{
		IsValid:         false,
		Confidence:      0,
		Message:         message,
		DetectedClasses: []string{},
		ProcessorTag:    u.describer.Tag(),
	}
}

// isQuotaError はエラーがクォータ・レート制限によるものかを判定します。
func isQuotaError(err error) bool {
	if errors.Is(err, domain.ErrQuotaExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range quotaMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
