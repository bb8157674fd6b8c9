package usecase

import (
	"strings"

	targetentity "treasure_backend/internal/feature/target/domain/entity"
)

// KeywordSource はターゲットごとのキーワード辞書を提供します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type KeywordSource interface {
	ObjectKeywords(targetID string) []string
	DefaultColors(targetID string) []string
	ColorSynonyms(name targetentity.ColorName) ([]string, bool)
}

// KeywordResolver はターゲットIDから照合用のキーワード集合を解決します。
type KeywordResolver struct {
	src KeywordSource
}

// NewKeywordResolver はKeywordResolverの新しいインスタンスを生成します。
func NewKeywordResolver(src KeywordSource) *KeywordResolver {
	return &KeywordResolver{src: src}
}

// ObjectKeywords はターゲットとして受理できる物体キーワードを返します。未知のIDでは空集合です。
func (r *KeywordResolver) ObjectKeywords(targetID string) []string {
	return r.src.ObjectKeywords(targetID)
}

// ColorKeywords は受理できる色キーワードを返します。
// expectedColorが指定されていればその色の同義語のみを使い、ターゲットの既定パレットは無視します。
// 翻訳表にない色はそのまま単一要素の集合として扱います。
func (r *KeywordResolver) ColorKeywords(targetID string, expectedColor targetentity.ColorName) []string {
	token := strings.TrimSpace(string(expectedColor))
	if token == "" {
		return r.src.DefaultColors(targetID)
	}
	if syn, ok := r.src.ColorSynonyms(targetentity.ColorName(token)); ok {
		return syn
	}
	return []string{token}
}
