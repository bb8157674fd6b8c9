package usecase

import (
	"math"

	"treasure_backend/internal/feature/validation/domain/entity"
)

const (
	// ObjectMismatchColorWeight は物体不一致時に色信頼度へ掛ける係数です。
	ObjectMismatchColorWeight = 0.2

	// AnyObjectWeight はModeAnyで物体信頼度へ掛ける係数です。
	AnyObjectWeight = 0.95
	// AnyThreshold はModeAnyの合格閾値です。
	AnyThreshold = 0.60

	// StrictObjectWeight, StrictColorWeight はModeStrictで色が一致した場合の重みです。
	StrictObjectWeight = 0.7
	StrictColorWeight  = 0.3
	// StrictThreshold はModeStrictの合格閾値です。
	StrictThreshold = 0.65
	// StrictMismatchPenalty はModeStrictで色が一致しない場合に物体信頼度へ掛ける係数です。
	StrictMismatchPenalty = 0.3

	// FlexibleObjectWeight, FlexibleColorWeight はModeFlexibleで色が一致した場合の重みです。
	FlexibleObjectWeight = 0.8
	FlexibleColorWeight  = 0.2
	// FlexibleThreshold はModeFlexibleで色が一致した場合の合格閾値です。
	FlexibleThreshold = 0.65
	// FlexibleMismatchPenalty はModeFlexibleで色が一致しない場合に物体信頼度へ掛ける係数です。
	FlexibleMismatchPenalty = 0.75
	// FlexibleMismatchThreshold はModeFlexibleで色が一致しない場合の合格閾値です。
	FlexibleMismatchThreshold = 0.60
)

// Decision はDecideの結果です。
type Decision struct {
	Mode       entity.Mode
	Outcome    entity.Outcome
	Confidence float64 // [0,1]にクランプ済み
	IsValid    bool
}

// SelectMode は判定モードを決定します。
//
// 優先順位:
//  1. 期待色が指定され、かつモデルが色を重要と判断 → strict
//  2. モデルが色を重要と判断 → strict
//  3. 色を問わないカテゴリ → any
//  4. それ以外 → flexible
func SelectMode(hasExpectedColor, colorMatters, colorIrrelevant bool) entity.Mode {
	switch {
	case hasExpectedColor && colorMatters:
		return entity.ModeStrict
	case colorMatters:
		return entity.ModeStrict
	case colorIrrelevant:
		return entity.ModeAny
	default:
		return entity.ModeFlexible
	}
}

// Decide は物体・色の一致結果と信頼度を融合し、最終信頼度と合否を返します。
// 物体が一致しない場合はモードに関わらず不合格です。
func Decide(mode entity.Mode, objectMatch, colorMatch bool, objectConf, colorConf float64) Decision {
	d := Decision{Mode: mode}

	if !objectMatch {
		d.Outcome = entity.OutcomeObjectMismatch
		d.Confidence = Clamp(colorConf * ObjectMismatchColorWeight)
		return d
	}

	switch mode {
	case entity.ModeAny:
		d.Outcome = entity.OutcomeObjectOnly
		d.Confidence = Clamp(objectConf * AnyObjectWeight)
		d.IsValid = d.Confidence > AnyThreshold
	case entity.ModeStrict:
		if colorMatch {
			d.Outcome = entity.OutcomeColorMatch
			d.Confidence = Clamp(objectConf*StrictObjectWeight + colorConf*StrictColorWeight)
			d.IsValid = d.Confidence > StrictThreshold
		} else {
			// 色の不一致はstrictでは信頼度に関わらず不合格
			d.Outcome = entity.OutcomeStrictColorMismatch
			d.Confidence = Clamp(objectConf * StrictMismatchPenalty)
			d.IsValid = false
		}
	default:
		if colorMatch {
			d.Outcome = entity.OutcomeColorMatch
			d.Confidence = Clamp(objectConf*FlexibleObjectWeight + colorConf*FlexibleColorWeight)
			d.IsValid = d.Confidence > FlexibleThreshold
		} else {
			d.Outcome = entity.OutcomeFlexibleColorMismatch
			d.Confidence = Clamp(objectConf * FlexibleMismatchPenalty)
			d.IsValid = d.Confidence > FlexibleMismatchThreshold
		}
	}
	return d
}

// Clamp は値を[0,1]に収めます。NaNは0として扱います。
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
