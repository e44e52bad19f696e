// Command billsummary analyzes a carrier bill PDF from the command line.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Aashish23092/carrier-bill-analyzer/client"
	"github.com/Aashish23092/carrier-bill-analyzer/config"
	"github.com/Aashish23092/carrier-bill-analyzer/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)

func main() {
	cfg := config.LoadConfig()

	password := flag.String("password", "", "password for an encrypted bill")
	qrPath := flag.String("qr", "", "write the summary QR code PNG to this path")
	csvPath := flag.String("csv", "", "write the per-line costs as CSV to this path")
	flag.StringVar(&cfg.LineGrammar, "grammar", cfg.LineGrammar, "line row grammar: signed-edges, all-signed or unsigned")
	flag.StringVar(&cfg.AllocationPolicy, "policy", cfg.AllocationPolicy, "voice line charges: components or declared-total")
	flag.IntVar(&cfg.BillPage, "page", cfg.BillPage, "page holding the bill summary")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: billsummary [flags] <bill.pdf>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg, flag.Arg(0), *password, *qrPath, *csvPath); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, path, password, qrPath, csvPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	qrEncoder := client.NewQREncoder(cfg.QRSize, cfg.QRVersion, cfg.QRMargin)
	svc, err := service.NewBillService(service.NewPDFProcessor(), qrEncoder, cfg)
	if err != nil {
		return err
	}

	analysis, err := svc.Analyze(context.Background(), data, password)
	if err != nil {
		return err
	}

	fmt.Println(render(svc, analysis))

	if qrPath != "" {
		img, err := svc.SummaryPNG(analysis)
		if err != nil {
			return err
		}
		if err := os.WriteFile(qrPath, img, 0o644); err != nil {
			return err
		}
		fmt.Println(okStyle.Render("QR code written to " + qrPath))
	}

	if csvPath != "" {
		var buf bytes.Buffer
		if err := service.WriteCSV(&buf, analysis); err != nil {
			return err
		}
		if err := os.WriteFile(csvPath, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Println(okStyle.Render("CSV written to " + csvPath))
	}
	return nil
}

func render(svc *service.BillService, a *service.Analysis) string {
	resp := svc.BuildResponse(a)

	var out bytes.Buffer
	fmt.Fprintln(&out, titleStyle.Render("Bill analysis "+a.ID.String()))
	for _, g := range a.Groups {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			}).
			Headers("Phone", "Cost", "Final total")
		for _, l := range g.Lines {
			t.Row(l.Phone, "$"+l.Cost.StringFixed(2), "$"+l.FinalTotal.StringFixed(3))
		}
		t.Row("Subtotal", "$"+g.Subtotal.StringFixed(2), "")

		fmt.Fprintln(&out)
		fmt.Fprintln(&out, headerStyle.Render(string(g.Type)+" Lines"))
		fmt.Fprintln(&out, t.String())
	}

	fmt.Fprintln(&out)
	fmt.Fprintf(&out, "Grand total:    $%s\n", a.Reconciliation.Computed.StringFixed(2))
	fmt.Fprintf(&out, "Declared total: $%s\n", a.Reconciliation.Declared.StringFixed(2))
	for _, w := range resp.Warnings {
		fmt.Fprintln(&out, warningStyle.Render("warning: "+w.Code+": "+w.Message))
	}
	return out.String()
}
