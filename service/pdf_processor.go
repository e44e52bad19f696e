package service

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/Aashish23092/carrier-bill-analyzer/utils/billsummary"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor yields the plain text of one page of a PDF document.
type PDFProcessor interface {
	PageCount(pdfData []byte, password string) (int, error)
	ExtractPageText(pdfData []byte, password string, page int) (string, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

func newConfiguration(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}
	return conf
}

func (p *pdfProcessor) PageCount(pdfData []byte, password string) (int, error) {
	n, err := api.PageCount(bytes.NewReader(pdfData), newConfiguration(password))
	if err != nil {
		return 0, fmt.Errorf("failed to read pdf: %w", err)
	}
	return n, nil
}

// decrypt returns pdfData unchanged without a password. ledongthuc/pdf cannot
// open encrypted documents, so pdfcpu removes the encryption first.
func (p *pdfProcessor) decrypt(pdfData []byte, password string) ([]byte, error) {
	if password == "" {
		return pdfData, nil
	}
	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, newConfiguration(password)); err != nil {
		return nil, fmt.Errorf("failed to decrypt pdf: %w", err)
	}
	return out.Bytes(), nil
}

// ExtractPageText returns the text of a 1-indexed page, one line per text row.
func (p *pdfProcessor) ExtractPageText(pdfData []byte, password string, page int) (text string, err error) {
	count, err := p.PageCount(pdfData, password)
	if err != nil {
		return "", err
	}
	if count < page {
		return "", fmt.Errorf("%w: pdf has %d page(s), need page %d", billsummary.ErrInsufficientPages, count, page)
	}

	data, err := p.decrypt(pdfData, password)
	if err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	pg := r.Page(page)
	if pg.V.IsNull() {
		return "", fmt.Errorf("%w: page %d is empty", billsummary.ErrInsufficientPages, page)
	}

	if text = rowText(pg); strings.TrimSpace(text) != "" {
		return text, nil
	}

	plain, err := pg.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract page %d text: %w", page, err)
	}
	return plain, nil
}

// rowText rebuilds each text row left to right, inserting a space wherever
// the gap between two pieces is wider than a fraction of the font size.
func rowText(pg pdf.Page) string {
	rows, err := pg.GetTextByRow()
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, row := range rows {
		words := append([]pdf.Text(nil), row.Content...)
		sort.SliceStable(words, func(i, j int) bool { return words[i].X < words[j].X })

		var prevEnd float64
		for i, w := range words {
			if i > 0 && w.X-prevEnd > w.FontSize*0.2 {
				b.WriteString(" ")
			}
			b.WriteString(w.S)
			prevEnd = w.X + w.W
		}
		b.WriteString("\n")
	}
	return b.String()
}
