// Package entity はtargetフィーチャーのドメインモデルを定義します。
package entity

// ColorName は色を表すトークンです（例: "red", "blue"）。
type ColorName string

// Target はユーザーが撮影すべき対象を表します。
// カタログ読み込み時に生成され、以降変更されません。
type Target struct {
	ID            string    // 一意なID（例: "blue-door"）
	Name          string    // 表示名
	Description   string    // 説明（任意）
	Category      string    // カテゴリ（任意）
	Icon          string    // アイコン名（任意）
	ExpectedColor ColorName // 期待される色（任意、空なら色指定なし）
}

// HasExpectedColor は期待色が指定されているかを返します。
func (t Target) HasExpectedColor() bool {
	return t.ExpectedColor != ""
}
