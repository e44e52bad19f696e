package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/Aashish23092/carrier-bill-analyzer/client"
	"github.com/Aashish23092/carrier-bill-analyzer/config"
	"github.com/Aashish23092/carrier-bill-analyzer/utils/billsummary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billPage = `
THIS BILL SUMMARY
Line Type Plans Equipment Services One-time charges Total
Totals $95.00 $30.00 $10.00 - $145.00
Account $40.00 - $5.00 - $45.00
(555) 123-4567 Alex Pixel 8 Voice $20.00 $15.00 - - $35.00
(555) 234-5678 Sam iPhone 15 Voice $20.00 $15.00 $5.00 - $40.00
(555) 345-6789 Old number Voice $15.00 - - - $15.00
(555) 456-7890 Apple Watch Wearable $10.00 - - - $10.00
`

type fakePDFProcessor struct {
	pages    int
	text     string
	err      error
	lastPage int
}

func (f *fakePDFProcessor) PageCount(pdfData []byte, password string) (int, error) {
	return f.pages, f.err
}

func (f *fakePDFProcessor) ExtractPageText(pdfData []byte, password string, page int) (string, error) {
	f.lastPage = page
	if f.err != nil {
		return "", f.err
	}
	if f.pages < page {
		return "", billsummary.ErrInsufficientPages
	}
	return f.text, nil
}

func testConfig() *config.Config {
	return &config.Config{
		BillPage:         2,
		QRSize:           300,
		QRMargin:         4,
		LineGrammar:      "signed-edges",
		AllocationPolicy: "components",
	}
}

func newTestService(t *testing.T, proc PDFProcessor, cfg *config.Config) *BillService {
	t.Helper()
	svc, err := NewBillService(proc, client.NewQREncoder(cfg.QRSize, cfg.QRVersion, cfg.QRMargin), cfg)
	require.NoError(t, err)
	return svc
}

func TestAnalyzeSampleBill(t *testing.T) {
	proc := &fakePDFProcessor{pages: 6, text: billPage}
	svc := newTestService(t, proc, testConfig())

	a, err := svc.Analyze(context.Background(), []byte("%PDF"), "")
	require.NoError(t, err)
	assert.Equal(t, 2, proc.lastPage)

	require.Len(t, a.Lines, 3)
	assert.Equal(t, "65", a.Lines[0].Cost.String())
	assert.Equal(t, "70", a.Lines[1].Cost.String())
	assert.Equal(t, "10", a.Lines[2].Cost.String())
	assert.True(t, a.Reconciliation.Matches)
	assert.Empty(t, a.Warnings)
	assert.Contains(t, a.Payload, "Voice Lines:\n  x555-123-4567: $65.00\n  x555-234-5678: $70.00")
	assert.NotEqual(t, a.ID.String(), "")
}

func TestAnalyzeInsufficientPages(t *testing.T) {
	svc := newTestService(t, &fakePDFProcessor{pages: 1, text: billPage}, testConfig())

	_, err := svc.Analyze(context.Background(), []byte("%PDF"), "")
	assert.ErrorIs(t, err, billsummary.ErrInsufficientPages)
}

func TestAnalyzeSectionNotFound(t *testing.T) {
	svc := newTestService(t, &fakePDFProcessor{pages: 2, text: "Page 2 of 2 nothing here"}, testConfig())

	_, err := svc.Analyze(context.Background(), []byte("%PDF"), "")
	assert.ErrorIs(t, err, billsummary.ErrSectionNotFound)
}

func TestAnalyzeCancelledContext(t *testing.T) {
	proc := &fakePDFProcessor{pages: 2, text: billPage}
	svc := newTestService(t, proc, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, []byte("%PDF"), "")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, proc.lastPage)
}

func TestAnalyzeProcessorError(t *testing.T) {
	boom := errors.New("corrupt xref table")
	svc := newTestService(t, &fakePDFProcessor{err: boom}, testConfig())

	_, err := svc.Analyze(context.Background(), []byte("%PDF"), "")
	assert.ErrorIs(t, err, boom)
}

func TestAnalyzeTextReportsTotalsMismatch(t *testing.T) {
	svc := newTestService(t, &fakePDFProcessor{}, testConfig())
	text := billPage + "\n(555) 999-0000 Spare Tablet $7.00 - - - $7.00"

	a, err := svc.AnalyzeText(context.Background(), text)
	require.NoError(t, err)
	assert.False(t, a.Reconciliation.Matches)
	require.Len(t, a.Warnings, 1)
	assert.ErrorIs(t, a.Warnings[0], billsummary.ErrGrandTotalMismatch)

	resp := svc.BuildResponse(a)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "GRAND_TOTAL_MISMATCH", resp.Warnings[0].Code)
	assert.InDelta(t, 152.0, resp.GrandTotal, 0.001)
	assert.InDelta(t, 145.0, resp.DeclaredTotal, 0.001)
}

func TestNewBillServiceRejectsUnknownOptions(t *testing.T) {
	cfg := testConfig()
	cfg.LineGrammar = "loose"
	_, err := NewBillService(&fakePDFProcessor{}, client.NewQREncoder(300, 0, 4), cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.AllocationPolicy = "by-usage"
	_, err = NewBillService(&fakePDFProcessor{}, client.NewQREncoder(300, 0, 4), cfg)
	assert.Error(t, err)
}

func TestDeclaredTotalPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.AllocationPolicy = "declared-total"
	svc := newTestService(t, &fakePDFProcessor{}, cfg)

	a, err := svc.AnalyzeText(context.Background(), billPage)
	require.NoError(t, err)
	require.Len(t, a.Lines, 3)
	// total - plans matches equipment + services when no one-time charges exist
	assert.Equal(t, "65", a.Lines[0].Cost.String())
	assert.Equal(t, "70", a.Lines[1].Cost.String())
}

func TestBuildResponse(t *testing.T) {
	svc := newTestService(t, &fakePDFProcessor{}, testConfig())
	a, err := svc.AnalyzeText(context.Background(), billPage)
	require.NoError(t, err)

	resp := svc.BuildResponse(a)
	assert.Equal(t, []string{"Plans", "Equipment", "Services", "One-time charges"}, resp.Columns)
	assert.Equal(t, 2, resp.VoiceLines)
	assert.InDelta(t, 55.0, resp.VoiceTaxPool, 0.001)
	assert.InDelta(t, 45.0, resp.Account["total"], 0.001)
	assert.True(t, resp.TotalsMatch)
	assert.Equal(t, 0, resp.SkippedRows)
	assert.Empty(t, resp.Warnings)

	require.Len(t, resp.Groups, 2)
	assert.Equal(t, "Voice", resp.Groups[0].Type)
	assert.InDelta(t, 135.0, resp.Groups[0].Subtotal, 0.001)
	assert.Equal(t, "Wearable", resp.Groups[1].Type)
}

func TestSummaryPNG(t *testing.T) {
	svc := newTestService(t, &fakePDFProcessor{}, testConfig())
	a, err := svc.AnalyzeText(context.Background(), billPage)
	require.NoError(t, err)

	png, err := svc.SummaryPNG(a)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestWriteCSV(t *testing.T) {
	svc := newTestService(t, &fakePDFProcessor{}, testConfig())
	a, err := svc.AnalyzeText(context.Background(), billPage)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, a))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"phone", "type", "cost", "final_total"}, records[0])
	assert.Equal(t, []string{"(555) 123-4567", "Voice", "65.00", "65.000"}, records[1])
	assert.Equal(t, []string{"(555) 456-7890", "Wearable", "10.00", "10.000"}, records[3])
}

func TestWarningCode(t *testing.T) {
	assert.Equal(t, "ROW_NOT_FOUND", WarningCode(billsummary.ErrRowNotFound))
	assert.Equal(t, "ANALYSIS_WARNING", WarningCode(errors.New("other")))
}
