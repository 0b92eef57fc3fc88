package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Rannielson/analisefinanceiro/internal/adapters/spreadsheet"
	"github.com/Rannielson/analisefinanceiro/internal/application/reconcile"
	"github.com/Rannielson/analisefinanceiro/internal/domain/ledger"
	"github.com/Rannielson/analisefinanceiro/internal/infrastructure/config"
	"github.com/Rannielson/analisefinanceiro/internal/observability"
)

func main() {
	var (
		refPath   = flag.String("referencia", "", "Reference spreadsheet (.xlsx)")
		compPath  = flag.String("comparacao", "", "Comparison spreadsheet (.xlsx)")
		year      = flag.Int("ano", 0, "Reference year for DD/MM dates (0 = default)")
		tolerance = flag.Float64("tolerancia", 0.01, "Amount tolerance in currency units")
		output    = flag.String("saida", "", "Output file (empty = stdout)")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := observability.NewLogger(config.LoggingConfig{
		Level:  logLevel.String(),
		Format: "text",
	})

	if *refPath == "" || *compPath == "" {
		fmt.Fprintln(os.Stderr, "uso: conciliar -referencia <arquivo.xlsx> -comparacao <arquivo.xlsx>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	refRows := mustParse(logger, *refPath)
	compRows := mustParse(logger, *compPath)

	cfg := reconcile.DefaultConfig()
	cfg.Tolerance = *tolerance
	if *year != 0 {
		cfg.ReferenceYear = *year
	}

	svc := reconcile.NewService(cfg, logger)
	report := svc.Run(refRows, compRows)

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Error("Failed to serialize report", "error", err)
		os.Exit(1)
	}

	if *output == "" {
		fmt.Println(string(payload))
		return
	}

	if err := os.WriteFile(*output, payload, 0o644); err != nil {
		logger.Error("Failed to write output file", "file", *output, "error", err)
		os.Exit(1)
	}
	logger.Info("Report written", "file", *output)
}

func mustParse(logger *slog.Logger, path string) []ledger.RawRow {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open spreadsheet", "file", path, "error", err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	rows, layout, err := spreadsheet.Parse(f)
	if err != nil {
		logger.Error("Failed to parse spreadsheet", "file", path, "error", err)
		os.Exit(1)
	}

	logger.Debug("Spreadsheet parsed", "file", path, "layout", string(layout), "rows", len(rows))
	return rows
}
