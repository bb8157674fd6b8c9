package usecase

import "strings"

// accentReplacer は照合前に取り除くスペイン語のアクセント記号の対応表です。
var accentReplacer = strings.NewReplacer(
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ñ", "n",
)

// Normalize は文字列を小文字化し、アクセント付き文字をラテン文字に置き換えます。
// 純粋関数であり、Normalize(Normalize(s)) == Normalize(s) が成り立ちます。
func Normalize(s string) string {
	return accentReplacer.Replace(strings.ToLower(s))
}
