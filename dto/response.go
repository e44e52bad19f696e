package dto

import "errors"

// Custom errors
var (
	ErrFileRequired    = errors.New("file is required")
	ErrInvalidFileType = errors.New("invalid file type. Supported: PDF")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Warning is a non-fatal data quality issue found during analysis.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LineSummary is the billed cost of one phone line.
type LineSummary struct {
	Phone      string  `json:"phone"`
	Type       string  `json:"type"`
	Cost       float64 `json:"cost"`
	FinalTotal float64 `json:"final_total"`
}

// LineGroup is every line of one type with its subtotal.
type LineGroup struct {
	Type     string        `json:"type"`
	Lines    []LineSummary `json:"lines"`
	Subtotal float64       `json:"subtotal"`
}

// BillAnalysisResponse is the structured result of one bill analysis.
type BillAnalysisResponse struct {
	AnalysisID    string             `json:"analysis_id"`
	Columns       []string           `json:"columns"`
	Account       map[string]float64 `json:"account"`
	Totals        map[string]float64 `json:"totals"`
	Lines         []LineSummary      `json:"lines"`
	Groups        []LineGroup        `json:"groups"`
	VoiceLines    int                `json:"voice_lines"`
	VoiceTaxPool  float64            `json:"voice_tax_pool"`
	GrandTotal    float64            `json:"grand_total"`
	DeclaredTotal float64            `json:"declared_total"`
	TotalsMatch   bool               `json:"totals_match"`
	SkippedRows   int                `json:"skipped_rows"`
	SummaryText   string             `json:"summary_text"`
	Warnings      []Warning          `json:"warnings"`
	ProcessedAt   string             `json:"processed_at"`
}
