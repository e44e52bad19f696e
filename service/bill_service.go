package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Aashish23092/carrier-bill-analyzer/client"
	"github.com/Aashish23092/carrier-bill-analyzer/config"
	"github.com/Aashish23092/carrier-bill-analyzer/dto"
	"github.com/Aashish23092/carrier-bill-analyzer/utils/billsummary"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Analysis is the result of one bill analysis run. Nothing in it is shared
// between runs.
type Analysis struct {
	ID             uuid.UUID
	ProcessedAt    time.Time
	Extraction     *billsummary.Extraction
	Lines          []billsummary.FinalLineSummary
	Groups         []billsummary.LineGroup
	Reconciliation billsummary.Reconciliation
	Payload        string
	Warnings       []error
}

type BillService struct {
	pdfProcessor PDFProcessor
	qrEncoder    *client.QREncoder
	extractor    *billsummary.Extractor
	allocator    *billsummary.Allocator
	page         int
	title        string
}

func NewBillService(pdfProcessor PDFProcessor, qrEncoder *client.QREncoder, cfg *config.Config) (*BillService, error) {
	grammar, err := billsummary.ParseLineGrammar(cfg.LineGrammar)
	if err != nil {
		return nil, err
	}
	policy, err := billsummary.ParseAllocationPolicy(cfg.AllocationPolicy)
	if err != nil {
		return nil, err
	}

	page := cfg.BillPage
	if page <= 0 {
		page = 2
	}

	return &BillService{
		pdfProcessor: pdfProcessor,
		qrEncoder:    qrEncoder,
		extractor:    billsummary.NewExtractor(grammar),
		allocator:    billsummary.NewAllocator(policy),
		page:         page,
		title:        cfg.SummaryTitle,
	}, nil
}

// Analyze extracts the bill summary page of a PDF and computes per-line costs.
func (s *BillService) Analyze(ctx context.Context, pdfData []byte, password string) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := s.pdfProcessor.ExtractPageText(pdfData, password, s.page)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page %d: %w", s.page, err)
	}
	log.Printf("Extracted %d characters from page %d", len(text), s.page)

	return s.AnalyzeText(ctx, text)
}

// AnalyzeText runs the analysis over already extracted page text.
func (s *BillService) AnalyzeText(ctx context.Context, pageText string) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ex, err := s.extractor.Parse(billsummary.Normalize(pageText))
	if err != nil {
		return nil, err
	}
	log.Printf("Detected columns %v, %d line row(s), %d eligible voice line(s)", ex.Schema.Columns(), len(ex.Lines), ex.VoiceLines)

	lines := s.allocator.AllocateExtraction(ex)

	a := &Analysis{
		ID:          uuid.New(),
		ProcessedAt: time.Now(),
		Extraction:  ex,
		Lines:       lines,
		Groups:      billsummary.GroupByType(lines),
		Payload:     billsummary.BuildPayload(s.title, lines),
		Warnings:    append([]error(nil), ex.Warnings...),
	}

	a.Reconciliation, err = billsummary.Reconcile(lines, ex.Totals)
	if err != nil {
		log.Printf("Warning: %v", err)
		a.Warnings = append(a.Warnings, err)
	}

	return a, nil
}

// SummaryPNG renders the analysis payload as a QR code PNG.
func (s *BillService) SummaryPNG(a *Analysis) ([]byte, error) {
	return s.qrEncoder.EncodePNG(a.Payload)
}

// BuildResponse converts an analysis into the API response shape.
func (s *BillService) BuildResponse(a *Analysis) *dto.BillAnalysisResponse {
	ex := a.Extraction

	resp := &dto.BillAnalysisResponse{
		AnalysisID:    a.ID.String(),
		Columns:       ex.Schema.Columns(),
		Account:       toFloatMap(ex.Account.Map()),
		Totals:        toFloatMap(ex.Totals.Map()),
		Lines:         toLineSummaries(a.Lines),
		VoiceLines:    ex.VoiceLines,
		VoiceTaxPool:  ex.VoiceTaxPool.InexactFloat64(),
		GrandTotal:    a.Reconciliation.Computed.Round(2).InexactFloat64(),
		DeclaredTotal: a.Reconciliation.Declared.InexactFloat64(),
		TotalsMatch:   a.Reconciliation.Matches,
		SkippedRows:   ex.Skipped,
		SummaryText:   a.Payload,
		Warnings:      []dto.Warning{},
		ProcessedAt:   a.ProcessedAt.Format(time.RFC3339),
	}

	for _, g := range a.Groups {
		resp.Groups = append(resp.Groups, dto.LineGroup{
			Type:     string(g.Type),
			Lines:    toLineSummaries(g.Lines),
			Subtotal: g.Subtotal.Round(2).InexactFloat64(),
		})
	}

	for _, w := range a.Warnings {
		resp.Warnings = append(resp.Warnings, dto.Warning{Code: WarningCode(w), Message: w.Error()})
	}
	if ex.Skipped > 0 {
		resp.Warnings = append(resp.Warnings, dto.Warning{
			Code:    "SKIPPED_LINE_ROWS",
			Message: fmt.Sprintf("%d phone number(s) in the summary did not parse as line rows", ex.Skipped),
		})
	}

	return resp
}

// WarningCode names a non-fatal analysis error for API clients.
func WarningCode(err error) string {
	switch {
	case errors.Is(err, billsummary.ErrRowNotFound):
		return "ROW_NOT_FOUND"
	case errors.Is(err, billsummary.ErrGrandTotalMismatch):
		return "GRAND_TOTAL_MISMATCH"
	default:
		return "ANALYSIS_WARNING"
	}
}

func toFloatMap(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v.InexactFloat64()
	}
	return out
}

func toLineSummaries(lines []billsummary.FinalLineSummary) []dto.LineSummary {
	out := make([]dto.LineSummary, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.LineSummary{
			Phone:      l.Phone,
			Type:       string(l.Type),
			Cost:       l.Cost.InexactFloat64(),
			FinalTotal: l.FinalTotal.InexactFloat64(),
		})
	}
	return out
}
