package entity

// Verdict は検証エンジンの判定結果です。呼び出し元がライフサイクルを所有します。
type Verdict struct {
	IsValid         bool     // 受理されたかどうか
	Confidence      float64  // 最終信頼度（常に0.0 ~ 1.0に収まる）
	Message         string   // 人間向けの説明
	DetectedClasses []string // 検出された物体ラベル
	ProcessorTag    string   // 使用したDescriberの識別子
}
