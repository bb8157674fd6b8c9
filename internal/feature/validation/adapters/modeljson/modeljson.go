// Package modeljson はビジョンモデルが返すJSONテキストをVisionDescriptionに変換します。
// Gemini / Ollama の両アダプターで共有されます。
package modeljson

import (
	"encoding/json"
	"fmt"
	"strings"

	"treasure_backend/internal/feature/validation/domain"
	"treasure_backend/internal/feature/validation/domain/entity"
	"treasure_backend/internal/feature/validation/usecase"
)

// description はモデルに要求するJSONの形です。
type description struct {
	MainObject             string   `json:"mainObject"`
	Confidence             float64  `json:"confidence"`
	DominantColor          string   `json:"dominantColor"`
	ColorConfidence        float64  `json:"colorConfidence"`
	Description            string   `json:"description"`
	ObjectsList            []string `json:"objectsList"`
	ColorMatters           *bool    `json:"colorMattersForThisObject"`
	ColorValidationReason  string   `json:"colorValidationReason"`
	ObjectValidationReason string   `json:"objectValidationReason"`
}

// StripCodeFences はMarkdownのコードフェンスや前後の余計なテキストを取り除き、
// 最も外側の {...} だけを返します。
func StripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.Trim(strings.TrimSpace(raw), "`")

	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}

// Parse はモデルの生テキストをVisionDescriptionに変換します。
// 欠けた数値は0、欠けた文字列は空文字、colorMattersForThisObject が欠けていればtrueになります。
func Parse(raw string) (*entity.VisionDescription, error) {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty model output", domain.ErrMalformedResponse)
	}

	var d description
	if err := json.Unmarshal([]byte(cleaned), &d); err != nil {
		repaired := RemoveTrailingCommas(cleaned)
		if repaired == cleaned {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		d = description{}
		if json.Unmarshal([]byte(repaired), &d) != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
	}

	colorMatters := true
	if d.ColorMatters != nil {
		colorMatters = *d.ColorMatters
	}

	objects := make([]string, 0, len(d.ObjectsList))
	for _, o := range d.ObjectsList {
		if o = strings.TrimSpace(o); o != "" {
			objects = append(objects, o)
		}
	}

	return &entity.VisionDescription{
		MainObject:       strings.TrimSpace(d.MainObject),
		ObjectConfidence: usecase.Clamp(d.Confidence),
		DominantColor:    strings.TrimSpace(d.DominantColor),
		ColorConfidence:  usecase.Clamp(d.ColorConfidence),
		AllObjects:       objects,
		Description:      d.Description,
		ColorMatters:     colorMatters,
		ColorReason:      d.ColorValidationReason,
		ObjectReason:     d.ObjectValidationReason,
		Raw:              raw,
	}, nil
}

// RemoveTrailingCommas は } や ] の直前にある余分なカンマを取り除きます。
// 文字列リテラル内のカンマは変更しません。
func RemoveTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(s) && strings.IndexByte(" \t\r\n", s[j]) >= 0 {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
