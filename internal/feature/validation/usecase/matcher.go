package usecase

import (
	"regexp"
	"strings"

	"treasure_backend/internal/feature/validation/domain/entity"
)

// negationPattern は否定表現（"not a tree" など）を検出します。正規化後の文字列に適用します。
var negationPattern = regexp.MustCompile(`\b(no|not|sin|without)\s+`)

// ObjectMatches は主物体ラベル、またはそれが一致しない場合はAllObjectsのいずれかが
// 期待キーワードに一致するかを返します。キーワードが空なら常にfalseです。
func ObjectMatches(d *entity.VisionDescription, keywords []string) bool {
	if d == nil {
		return false
	}
	normalized := normalizeAll(keywords)
	if len(normalized) == 0 {
		return false
	}
	if labelMatches(d.MainObject, normalized) {
		return true
	}
	for _, obj := range d.AllObjects {
		if labelMatches(obj, normalized) {
			return true
		}
	}
	return false
}

// ColorMatches は支配色が期待色の同義語のいずれかと一致するかを返します。
// 色の記述には否定が含まれない前提のため、否定の除外は行いません。
func ColorMatches(d *entity.VisionDescription, colors []string) bool {
	if d == nil {
		return false
	}
	detected := strings.TrimSpace(Normalize(d.DominantColor))
	if detected == "" {
		return false
	}
	for _, c := range normalizeAll(colors) {
		if containsEither(detected, c) {
			return true
		}
	}
	return false
}

// labelMatches は1つの検出ラベルを正規化済みキーワードと照合します。否定を含むラベルは一致しません。
func labelMatches(label string, normalizedKeywords []string) bool {
	detected := strings.TrimSpace(Normalize(label))
	if detected == "" || negationPattern.MatchString(detected) {
		return false
	}
	for _, kw := range normalizedKeywords {
		if containsEither(detected, kw) {
			return true
		}
	}
	return false
}

// containsEither は完全一致、またはどちらかがもう一方を含む場合にtrueを返します。
func containsEither(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := strings.TrimSpace(Normalize(s)); n != "" {
			out = append(out, n)
		}
	}
	return out
}
