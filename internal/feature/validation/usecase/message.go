package usecase

import (
	"fmt"

	"treasure_backend/internal/feature/validation/domain/entity"
)

// DefaultLocale は未知のロケールが指定された場合に使うロケールです。
const DefaultLocale = "en"

// messageSet はロケールごとのメッセージテンプレートです。
type messageSet struct {
	objectOnly       string // mainObject
	colorMatch       string // mainObject, dominantColor
	strictMismatch   string // mainObject, dominantColor, expectedColorDisplay
	flexibleMismatch string // mainObject, dominantColor
	objectMismatch   string // mainObject, dominantColor
	analysisFailed   string
	quotaReached     string
	expectedFallback string
}

var messageSets = map[string]messageSet{
	"en": {
		objectOnly:       "%s detected",
		colorMatch:       "%s in %s",
		strictMismatch:   "%s but color %s (expected: %s)",
		flexibleMismatch: "%s (color: %s)",
		objectMismatch:   "Seen: %s (%s)",
		analysisFailed:   "analysis failed",
		quotaReached:     "Daily analysis limit reached. Please try again tomorrow.",
		expectedFallback: "expected",
	},
	"es": {
		objectOnly:       "%s detectado",
		colorMatch:       "%s en %s",
		strictMismatch:   "%s pero color %s (esperado: %s)",
		flexibleMismatch: "%s (color: %s)",
		objectMismatch:   "Visto: %s (%s)",
		analysisFailed:   "Error: No se pudo analizar la imagen",
		quotaReached:     "Se alcanzó el límite diario de análisis. Por favor intenta mañana.",
		expectedFallback: "esperado",
	},
}

// messagesFor はロケールに対応するメッセージを返します。未知のロケールはDefaultLocaleになります。
func messagesFor(locale string) messageSet {
	if m, ok := messageSets[locale]; ok {
		return m
	}
	return messageSets[DefaultLocale]
}

// SupportedLocale はロケールがサポートされているかを返します。
func SupportedLocale(locale string) bool {
	_, ok := messageSets[locale]
	return ok
}

// buildMessage は判定分岐に応じたメッセージを生成します。
func (m messageSet) buildMessage(outcome entity.Outcome, mainObject, dominantColor, expectedDisplay string) string {
	switch outcome {
	case entity.OutcomeObjectOnly:
		return fmt.Sprintf(m.objectOnly, mainObject)
	case entity.OutcomeColorMatch:
		return fmt.Sprintf(m.colorMatch, mainObject, dominantColor)
	case entity.OutcomeStrictColorMismatch:
		return fmt.Sprintf(m.strictMismatch, mainObject, dominantColor, expectedDisplay)
	case entity.OutcomeFlexibleColorMismatch:
		return fmt.Sprintf(m.flexibleMismatch, mainObject, dominantColor)
	default:
		return fmt.Sprintf(m.objectMismatch, mainObject, dominantColor)
	}
}
