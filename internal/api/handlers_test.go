package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fjacquet/budget-board/internal/classify"
	"fjacquet/budget-board/internal/metrics"
	"fjacquet/budget-board/internal/models"
	"fjacquet/budget-board/internal/session"
	"fjacquet/budget-board/internal/workbook"
)

func writeMonthWorkbook(t *testing.T, path, income string, rows [][]string) {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		require.NoError(t, f.Close())
	}()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), "Summary"))
	if income != "" {
		require.NoError(t, f.SetCellValue("Summary", "O3", income))
	}

	_, err := f.NewSheet("Transactions")
	require.NoError(t, err)
	for col, value := range []string{"Category", "Amount", "Label"} {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Transactions", cell, value))
	}
	for i, row := range rows {
		for col, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Transactions", cell, value))
		}
	}

	require.NoError(t, f.SaveAs(path))
}

func newTestAPI(t *testing.T, dir string) http.Handler {
	t.Helper()
	s := session.NewSession(
		dir,
		workbook.NewReader("", "O3"),
		classify.NewClassifier(nil),
		metrics.NewEngine(6, 0.30, 0.50, 0.20),
	)
	_, _, err := s.LoadOrRefresh(context.Background())
	require.NoError(t, err)
	return NewRouter(NewHandler(s, dir), []string{"*"})
}

func doRequest(handler http.Handler, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, filename string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func seedJanuary(t *testing.T, dir string) {
	t.Helper()
	writeMonthWorkbook(t, filepath.Join(dir, "January.xlsx"), "5000", [][]string{
		{"Rent", "-1500", "N"},
		{"Groceries", "600", ""},
	})
}

func TestHealth(t *testing.T) {
	dir := t.TempDir()
	seedJanuary(t, dir)
	handler := newTestAPI(t, dir)

	rec := doRequest(handler, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetPortfolio(t *testing.T) {
	dir := t.TempDir()
	seedJanuary(t, dir)
	handler := newTestAPI(t, dir)

	rec := doRequest(handler, http.MethodGet, "/api/portfolio", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PortfolioResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, session.StateLoaded, resp.State)
	require.Len(t, resp.Months, 1)
	assert.Equal(t, "January", resp.Months[0].Month)
	assert.Equal(t, 2, resp.Months[0].TransactionCount)
	assert.True(t, resp.Months[0].Income.Equal(decimal.RequireFromString("5000")))
	assert.True(t, resp.YearToDate.Expenses.Equal(decimal.RequireFromString("2100")), "got %s", resp.YearToDate.Expenses)
	require.NotNil(t, resp.Report)
	assert.Equal(t, 1, resp.Report.FilesLoaded)

	// Amounts are plain JSON numbers.
	assert.Contains(t, rec.Body.String(), `"income":5000`)
}

func TestListMonths(t *testing.T) {
	dir := t.TempDir()
	seedJanuary(t, dir)
	writeMonthWorkbook(t, filepath.Join(dir, "February.xlsx"), "", [][]string{{"Rent", "-1500", "N"}})
	handler := newTestAPI(t, dir)

	rec := doRequest(handler, http.MethodGet, "/api/months", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"months":["January","February"]}`, rec.Body.String())
}

func TestGetMonth(t *testing.T) {
	dir := t.TempDir()
	seedJanuary(t, dir)
	handler := newTestAPI(t, dir)

	rec := doRequest(handler, http.MethodGet, "/api/months/january", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var record models.MonthlyRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, "January", record.Month)
	require.Len(t, record.Transactions, 2)
	assert.Equal(t, "Rent", record.Transactions[0].Category)
	assert.Equal(t, models.LabelNeeds, record.Transactions[1].Label, "classifier resolved Groceries")

	missing := doRequest(handler, http.MethodGet, "/api/months/Banana", "", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), "month not loaded")
}

func TestGetMetrics(t *testing.T) {
	dir := t.TempDir()
	seedJanuary(t, dir)
	handler := newTestAPI(t, dir)

	rec := doRequest(handler, http.MethodGet, "/api/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.MetricsResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 6, result.EmergencyFundMonths)
	require.Len(t, result.Trend, 1)
	assert.True(t, result.Trend[0].TotalSpend.Equal(decimal.RequireFromString("2100")))
}

func TestRefresh(t *testing.T) {
	dir := t.TempDir()
	seedJanuary(t, dir)
	handler := newTestAPI(t, dir)

	writeMonthWorkbook(t, filepath.Join(dir, "March.xlsx"), "3000", [][]string{{"Groceries", "400", ""}})

	rec := doRequest(handler, http.MethodPost, "/api/refresh", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PortfolioResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Months, 2)
	assert.Equal(t, "March", resp.Months[1].Month)
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	seedJanuary(t, dir)
	handler := newTestAPI(t, dir)

	payloadPath := filepath.Join(t.TempDir(), "payload.xlsx")
	writeMonthWorkbook(t, payloadPath, "4200", [][]string{{"Dining Out", "150", ""}})
	payload, err := os.ReadFile(payloadPath)
	require.NoError(t, err)

	body, contentType := multipartBody(t, "February.xlsx", payload)
	rec := doRequest(handler, http.MethodPost, "/api/upload", contentType, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp PortfolioResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Months, 2)
	assert.Equal(t, "February", resp.Months[1].Month)
	assert.FileExists(t, filepath.Join(dir, "February.xlsx"))
}

func TestUploadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	seedJanuary(t, dir)
	handler := newTestAPI(t, dir)

	t.Run("wrong extension", func(t *testing.T) {
		body, contentType := multipartBody(t, "February.csv", []byte("a,b"))
		rec := doRequest(handler, http.MethodPost, "/api/upload", contentType, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "only .xlsx workbooks")
	})

	t.Run("unknown month name", func(t *testing.T) {
		body, contentType := multipartBody(t, "Stuff.xlsx", []byte("x"))
		rec := doRequest(handler, http.MethodPost, "/api/upload", contentType, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "no month name recognized")
	})

	t.Run("corrupt workbook", func(t *testing.T) {
		body, contentType := multipartBody(t, "February.xlsx", []byte("not an xlsx"))
		rec := doRequest(handler, http.MethodPost, "/api/upload", contentType, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing form field", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.WriteField("other", "x"))
		require.NoError(t, writer.Close())

		rec := doRequest(handler, http.MethodPost, "/api/upload", writer.FormDataContentType(), &buf)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing form field 'file'")
	})
}

func TestDownloadTemplate(t *testing.T) {
	dir := t.TempDir()
	seedJanuary(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, models.TemplateFileName), []byte("workbook bytes"), 0644))
	handler := newTestAPI(t, dir)

	t.Run("allowed template", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/api/templates/Template.xlsx", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "Template.xlsx")
		assert.Equal(t, "workbook bytes", rec.Body.String())
	})

	t.Run("outside the allow-list", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/api/templates/January.xlsx", "", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("allowed but not generated", func(t *testing.T) {
		rec := doRequest(handler, http.MethodGet, "/api/templates/BlankTemplate.xlsx", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRespondJSONEncodesNil(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
