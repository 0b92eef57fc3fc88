package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Rannielson/analisefinanceiro/internal/api/handlers"
	"github.com/Rannielson/analisefinanceiro/internal/application/reconcile"
	"github.com/Rannielson/analisefinanceiro/internal/infrastructure/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// xlsxBytes builds an in-memory workbook from the given rows.
func xlsxBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

type upload struct {
	field    string
	filename string
	content  []byte
}

// multipartRequest assembles a POST /api/conciliar request with the
// given uploads and form fields.
func multipartRequest(t *testing.T, uploads []upload, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, u := range uploads {
		part, err := writer.CreateFormFile(u.field, u.filename)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/conciliar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func referenceSheet(t *testing.T) []byte {
	return xlsxBytes(t, [][]any{
		{"FORNECEDOR/COLABORADOR", "DATA", "VALOR", "CENTRO DE CUSTO", "Departamento"},
		{"Fornecedor Alfa LTDA", "10/05", "R$ 100,00", "Recife", "Financeiro"},
		{"Fornecedor Beta", "10/05", "50,00", "", "RH"},
	})
}

func comparisonSheet(t *testing.T) []byte {
	return xlsxBytes(t, [][]any{
		{"Fornecedor - nome", "Data pagamento", "Valor pagamento", "Centro custo", "Descrição"},
		{"Fornecedor Alfa", "10/05/2026", "100,00", "SEGBRASIL RECIFE", "Pagamento mensal"},
	})
}

func newReconcileHandler(repo storage.Repository) *handlers.ReconcileHandler {
	return handlers.NewReconcileHandler(repo, reconcile.DefaultConfig(), testLogger())
}

func TestReconcileHandler(t *testing.T) {
	t.Run("reconciles two spreadsheets and archives the run", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newReconcileHandler(repo)

		req := multipartRequest(t, []upload{
			{"arquivo_referencia", "referencia.xlsx", referenceSheet(t)},
			{"arquivo_comparacao", "comparacao.xlsx", comparisonSheet(t)},
		}, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var report reconcile.Report
		err := json.NewDecoder(rec.Body).Decode(&report)
		require.NoError(t, err)

		assert.Equal(t, 2, report.Summary.TotalReference)
		assert.Equal(t, 1, report.Summary.TotalComparison)
		assert.Equal(t, 1, report.Summary.ConfirmedMatches)
		assert.Equal(t, 1, report.Summary.NotFound)

		assert.True(t, repo.SaveRunCalled)
		require.NotNil(t, repo.LastSavedRun)
		assert.Equal(t, "referencia.xlsx", repo.LastSavedRun.ReferenceFile)
		assert.Equal(t, "comparacao.xlsx", repo.LastSavedRun.ComparisonFile)
		assert.Equal(t, 2, repo.LastSavedRun.TotalReference)
		assert.NotEmpty(t, repo.LastSavedRun.ReportJSON)
	})

	t.Run("accepts ano_referencia override", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newReconcileHandler(repo)

		req := multipartRequest(t, []upload{
			{"arquivo_referencia", "referencia.xlsx", referenceSheet(t)},
			{"arquivo_comparacao", "comparacao.xlsx", comparisonSheet(t)},
		}, map[string]string{"ano_referencia": "2026"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects invalid ano_referencia", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newReconcileHandler(repo)

		req := multipartRequest(t, []upload{
			{"arquivo_referencia", "referencia.xlsx", referenceSheet(t)},
			{"arquivo_comparacao", "comparacao.xlsx", comparisonSheet(t)},
		}, map[string]string{"ano_referencia": "abc"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing reference file", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newReconcileHandler(repo)

		req := multipartRequest(t, []upload{
			{"arquivo_comparacao", "comparacao.xlsx", comparisonSheet(t)},
		}, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, repo.SaveRunCalled)
	})

	t.Run("rejects non-xlsx upload", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newReconcileHandler(repo)

		req := multipartRequest(t, []upload{
			{"arquivo_referencia", "referencia.csv", []byte("a,b,c")},
			{"arquivo_comparacao", "comparacao.xlsx", comparisonSheet(t)},
		}, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects spreadsheet with unknown headers", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newReconcileHandler(repo)

		unknown := xlsxBytes(t, [][]any{
			{"Coluna A", "Coluna B", "Coluna C"},
			{"x", "y", "z"},
		})

		req := multipartRequest(t, []upload{
			{"arquivo_referencia", "referencia.xlsx", unknown},
			{"arquivo_comparacao", "comparacao.xlsx", comparisonSheet(t)},
		}, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure does not fail the request", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.SaveRunErr = fmt.Errorf("disco cheio")
		handler := newReconcileHandler(repo)

		req := multipartRequest(t, []upload{
			{"arquivo_referencia", "referencia.xlsx", referenceSheet(t)},
			{"arquivo_comparacao", "comparacao.xlsx", comparisonSheet(t)},
		}, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
