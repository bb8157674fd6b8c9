// Package dto defines data transfer objects for the target HTTP API.
package dto

// TargetItem represents a target in the API response.
type TargetItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	Icon          string `json:"icon,omitempty"`
	ExpectedColor string `json:"expected_color,omitempty"`
}
