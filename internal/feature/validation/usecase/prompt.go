package usecase

import (
	"fmt"

	targetentity "treasure_backend/internal/feature/target/domain/entity"
)

// PromptTemplate はビジョンモデルへの指示文のテンプレートです。
// %[1]s にターゲットID、%[2]s に色指定の文が入ります。
const PromptTemplate = `Analyze this image for a treasure hunt game.

GOAL: Determine whether the image contains: %[1]s

%[2]s

Based on the DESCRIPTION of the object, decide:
1. What the main object is
2. What the real dominant color is
3. Whether the COLOR matters to validate this object

Reply with valid JSON:
{
  "mainObject": "name of the main object",
  "confidence": number 0-1,
  "dominantColor": "real detected color",
  "colorConfidence": number 0-1,
  "description": "what you see",
  "objectsList": ["object1", "object2"],
  "colorMattersForThisObject": true/false,
  "colorValidationReason": "why the color does or does not matter",
  "objectValidationReason": "description of the object"
}

RULES:
- DOORS: color matters (must state blue, red, etc)
- LEAVES and TREES: color matters (red, green, brown)
- WATER: color is flexible (blue, gray, green are all valid)
- ANIMALS: color does not matter (any color is fine)
- PLANTS/FLOWERS: color matters

Reply ONLY with the JSON, no markdown.`

// BuildPrompt はターゲットと期待色からビジョンモデル向けのプロンプトを生成します。
func BuildPrompt(targetID string, expectedColor targetentity.ColorName) string {
	colorLine := "The color may vary."
	if expectedColor != "" {
		colorLine = fmt.Sprintf("Look SPECIFICALLY for an object colored %s.", expectedColor)
	}
	return fmt.Sprintf(PromptTemplate, targetID, colorLine)
}
