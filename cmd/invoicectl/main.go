package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"gstinvoice/config"
	"gstinvoice/logger"
	"gstinvoice/models"
	"gstinvoice/utils"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	formFlag := &cli.StringFlag{
		Name:     "form",
		Aliases:  []string{"f"},
		Usage:    "invoice form as JSON",
		Required: true,
	}

	return &cli.App{
		Name:  "invoicectl",
		Usage: "compute and render GST invoices without the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "warn", EnvVars: []string{"LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			{
				Name:      "words",
				Usage:     "spell a whole rupee amount in the Indian numbering system",
				ArgsUsage: "AMOUNT",
				Action:    wordsCmd,
			},
			{
				Name:   "compute",
				Usage:  "print the computed invoice record as JSON",
				Flags:  []cli.Flag{formFlag},
				Action: computeCmd,
			},
			{
				Name:  "render",
				Usage: "render the invoice to a PDF file",
				Flags: []cli.Flag{
					formFlag,
					&cli.StringFlag{Name: "engine", Value: "gofpdf", Usage: "chromedp, wkhtmltopdf or gofpdf"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output path (default {invoice_no}_{invoice_date}.pdf)"},
					&cli.DurationFlag{Name: "timeout", Value: 90 * time.Second},
					&cli.IntFlag{Name: "retries", Value: 1},
				},
				Action: renderCmd,
			},
			{
				Name:  "xlsx",
				Usage: "export the invoice to a spreadsheet",
				Flags: []cli.Flag{
					formFlag,
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}},
				},
				Action: xlsxCmd,
			},
		},
	}
}

func wordsCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: invoicectl words AMOUNT", 2)
	}
	n, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid amount %q", c.Args().First()), 2)
	}
	words, err := utils.NumberToWords(n)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	fmt.Fprintln(c.App.Writer, words)
	return nil
}

func loadRecord(path string) (*models.InvoiceRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var form models.InvoiceForm
	if err := json.Unmarshal(b, &form); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return utils.BuildInvoice(form, models.DefaultSeller())
}

func computeCmd(c *cli.Context) error {
	rec, err := loadRecord(c.String("form"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func renderCmd(c *cli.Context) error {
	log := logger.New(c.String("log-level"), "console")
	ctx := logger.WithContext(context.Background(), log)

	rec, err := loadRecord(c.String("form"))
	if err != nil {
		return err
	}

	cfg := &config.Config{
		PDFEngine:       c.String("engine"),
		PDFTimeout:      c.Duration("timeout"),
		PDFRetries:      c.Int("retries"),
		ChromePath:      os.Getenv("CHROME_PATH"),
		ChromeNoSandbox: true,
		WkhtmltopdfPath: os.Getenv("WKHTMLTOPDF_PATH"),
	}
	exporter, err := utils.NewPDFExporter(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	renderer, err := utils.NewRenderer()
	if err != nil {
		return err
	}
	html, err := renderer.InvoiceHTML(rec)
	if err != nil {
		return err
	}

	out, err := exporter.Export(ctx, utils.Document{HTML: html, Record: rec})
	if err != nil {
		return err
	}
	return writeOutput(c, rec, "pdf", out)
}

func xlsxCmd(c *cli.Context) error {
	rec, err := loadRecord(c.String("form"))
	if err != nil {
		return err
	}
	out, err := utils.ExportXLSX(rec)
	if err != nil {
		return err
	}
	return writeOutput(c, rec, "xlsx", out)
}

func writeOutput(c *cli.Context, rec *models.InvoiceRecord, ext string, data []byte) error {
	path := c.String("out")
	if path == "" {
		path = utils.InvoiceFilename(rec, ext)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, path)
	return nil
}
