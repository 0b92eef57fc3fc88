package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rannielson/analisefinanceiro/internal/adapters/spreadsheet"
	"github.com/Rannielson/analisefinanceiro/internal/api/dto"
	"github.com/Rannielson/analisefinanceiro/internal/application/reconcile"
	"github.com/Rannielson/analisefinanceiro/internal/domain/ledger"
	"github.com/Rannielson/analisefinanceiro/internal/infrastructure/storage"
)

// maxUploadBytes caps the multipart form held in memory per request.
const maxUploadBytes = 32 << 20

// ReconcileHandler handles reconciliation requests: two uploaded
// spreadsheets in, one full report out.
type ReconcileHandler struct {
	*Base
	cfg    reconcile.Config
	logger *slog.Logger
}

// NewReconcileHandler creates a new reconcile handler.
func NewReconcileHandler(repo storage.Repository, cfg reconcile.Config, logger *slog.Logger) *ReconcileHandler {
	return &ReconcileHandler{
		Base:   NewBase(repo),
		cfg:    cfg,
		logger: logger,
	}
}

// ServeHTTP handles POST /api/conciliar. It expects a multipart form
// with the files "arquivo_referencia" and "arquivo_comparacao" (both
// .xlsx) and an optional "ano_referencia" field overriding the year
// used to complete day/month dates.
func (h *ReconcileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("formulário multipart inválido"))
		return
	}

	refRows, refName, ok := h.readSpreadsheet(w, r, "arquivo_referencia")
	if !ok {
		return
	}
	compRows, compName, ok := h.readSpreadsheet(w, r, "arquivo_comparacao")
	if !ok {
		return
	}

	cfg := h.cfg
	if raw := r.FormValue("ano_referencia"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1900 || year > 2200 {
			h.WriteError(w, http.StatusBadRequest, dto.ValidationError("ano_referencia inválido"))
			return
		}
		cfg.ReferenceYear = year
	}

	svc := reconcile.NewService(cfg, h.logger)
	report := svc.Run(refRows, compRows)

	h.archive(report, refName, compName)

	h.WriteJSON(w, http.StatusOK, report)
}

// readSpreadsheet pulls one uploaded .xlsx out of the form and parses
// it into raw rows. On failure it writes the error response and
// returns ok=false.
func (h *ReconcileHandler) readSpreadsheet(w http.ResponseWriter, r *http.Request, field string) ([]ledger.RawRow, string, bool) {
	file, header, err := r.FormFile(field)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(field+" é obrigatório"))
		return nil, "", false
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError("ambos os arquivos devem ser .xlsx"))
		return nil, "", false
	}

	rows, layout, err := spreadsheet.Parse(file)
	if errors.Is(err, spreadsheet.ErrUnknownLayout) {
		h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return nil, "", false
	}
	if err != nil {
		h.logger.Error("failed to parse spreadsheet", "field", field, "file", header.Filename, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return nil, "", false
	}

	h.logger.Info("spreadsheet parsed", "field", field, "file", header.Filename, "layout", string(layout), "rows", len(rows))
	return rows, header.Filename, true
}

// archive stores the finished run. Archiving is best effort: a storage
// failure is logged but never fails the request that produced the
// report.
func (h *ReconcileHandler) archive(report *reconcile.Report, refName, compName string) {
	payload, err := json.Marshal(report)
	if err != nil {
		h.logger.Error("failed to serialize report for archiving", "error", err)
		return
	}

	run := &storage.ReconciliationRun{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		ReferenceFile:   refName,
		ComparisonFile:  compName,
		TotalReference:  report.Summary.TotalReference,
		TotalComparison: report.Summary.TotalComparison,
		Confirmed:       report.Summary.ConfirmedMatches,
		Divergent:       report.Summary.Divergent,
		NotFound:        report.Summary.NotFound,
		MissingInfo:     report.Summary.MissingInfo,
		DailyAlerts:     report.Summary.TotalDailyAlerts,
		ReportJSON:      string(payload),
	}

	if err := h.repo.SaveRun(run); err != nil {
		h.logger.Error("failed to archive run", "run_id", run.ID, "error", err)
		return
	}

	h.logger.Info("run archived", "run_id", run.ID)
}
