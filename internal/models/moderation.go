package models

// Verdict is the outcome of a moderation check on a single text snapshot.
// It is ephemeral: recomputed per snapshot, never persisted.
type Verdict struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason,omitempty"`
}

// Valid is the verdict for acceptable content.
func Valid() Verdict {
	return Verdict{IsValid: true}
}

// Invalid builds a failing verdict with the given reason.
func Invalid(reason string) Verdict {
	return Verdict{IsValid: false, Reason: reason}
}

// AnalyzeRequest is the payload sent to the toxicity scoring service.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// SummaryScore carries a single attribute score in [0,1].
type SummaryScore struct {
	Value float64 `json:"value"`
}

// AttributeScore wraps the summary score of one scored attribute.
type AttributeScore struct {
	SummaryScore SummaryScore `json:"summaryScore"`
}

// AnalyzeResult is the scoring service's mapping of attribute name to score.
type AnalyzeResult struct {
	AttributeScores map[string]AttributeScore `json:"attributeScores"`
}

// AnalyzeResponse is the envelope returned by the scoring endpoint.
type AnalyzeResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    AnalyzeResult `json:"data"`
}
