// Package dto defines data transfer objects for the validation HTTP API.
package dto

// VerdictResponse represents a validation verdict in the API response.
type VerdictResponse struct {
	TargetID        string   `json:"target_id"`
	IsValid         bool     `json:"is_valid"`
	Confidence      float64  `json:"confidence"`
	Message         string   `json:"message"`
	DetectedClasses []string `json:"detected_classes"`
	ProcessorTag    string   `json:"processor_tag"`
}
