package models

// AnalysisResult is the two-field natural-language output of the AI analysis
// collaborator. The portfolio core never depends on its contents.
type AnalysisResult struct {
	Symbol    string `json:"symbol"`
	Summary   string `json:"summary"`
	Advice    string `json:"advice"`
	Timestamp string `json:"timestamp"`
}
