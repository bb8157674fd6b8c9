package entity

// Mode は色の一致をどれだけ厳密に要求するかを表すポリシーです。
type Mode int

const (
	// ModeFlexible は色を推奨として扱い、不一致は軽いペナルティのみです。
	ModeFlexible Mode = iota
	// ModeStrict は色の不一致を自動的に不合格とします。
	ModeStrict
	// ModeAny は色を一切参照しません。
	ModeAny
)

// String はモード名を返します。
func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeAny:
		return "any"
	default:
		return "flexible"
	}
}

// Outcome は判定関数がどの分岐で決着したかを表します。メッセージ生成に使います。
type Outcome int

const (
	// OutcomeObjectMismatch は物体が一致しなかったことを表します。
	OutcomeObjectMismatch Outcome = iota
	// OutcomeObjectOnly はModeAnyで物体のみを評価したことを表します。
	OutcomeObjectOnly
	// OutcomeColorMatch は物体・色ともに一致したことを表します。
	OutcomeColorMatch
	// OutcomeStrictColorMismatch はModeStrictで色が一致しなかったことを表します。
	OutcomeStrictColorMismatch
	// OutcomeFlexibleColorMismatch はModeFlexibleで色が一致しなかったことを表します。
	OutcomeFlexibleColorMismatch
)
