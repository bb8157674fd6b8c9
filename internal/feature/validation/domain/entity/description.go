// Package entity はvalidationフィーチャーのドメインモデルを定義します。
package entity

// VisionDescription はビジョンモデルが1枚の画像について返す構造化された説明です。
// 検証呼び出し1回ごとに生成され、その呼び出しの間だけOrchestratorが所有します。
type VisionDescription struct {
	MainObject       string   // 主な物体のラベル
	ObjectConfidence float64  // 物体の信頼度（0.0 ~ 1.0）
	DominantColor    string   // 支配的な色
	ColorConfidence  float64  // 色の信頼度（0.0 ~ 1.0）
	AllObjects       []string // 検出されたすべての物体ラベル（順序付き）
	Description      string   // 画像の自由記述
	ColorMatters     bool     // この物体にとって色が重要かどうか
	ColorReason      string   // 色が重要/重要でない理由
	ObjectReason     string   // 物体判定の説明
	Raw              string   // モデルの生のレスポンス（デバッグ用）
}
