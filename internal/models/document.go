package models

// Document holds the text extracted from an uploaded PDF.
// Immutable once produced; scoped to a single request.
type Document struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
}

// SummaryResult is the response payload for a successful upload.
type SummaryResult struct {
	Summary   string `json:"summary"`
	PageCount int    `json:"page_count"`
	FileName  string `json:"file_name"`
}
