// Package api exposes the loaded portfolio over HTTP. It is a thin
// presentation boundary: every route reads from or delegates to the
// session, no budgeting logic lives here.
package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fjacquet/budget-board/internal/budgeterror"
	"fjacquet/budget-board/internal/fileutils"
	"fjacquet/budget-board/internal/logging"
	"fjacquet/budget-board/internal/models"
	"fjacquet/budget-board/internal/session"
)

// maxUploadBytes caps workbook uploads; month sheets are small files.
const maxUploadBytes = 32 << 20

var log = logging.GetLogger()

// SetLogger allows setting a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

func init() {
	// Amounts render as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// templateAllowList names the only workbooks the template route serves.
var templateAllowList = []string{models.TemplateFileName, models.BlankTemplateFileName}

// Handler serves the dashboard API from a session snapshot.
type Handler struct {
	session     *session.Session
	templateDir string
}

// NewHandler builds the API handler. templateDir is where the template
// workbooks live, normally the data directory.
func NewHandler(s *session.Session, templateDir string) *Handler {
	return &Handler{session: s, templateDir: templateDir}
}

// MonthSummary is the per-month row of the portfolio overview, without the
// transaction detail.
type MonthSummary struct {
	Month             string          `json:"month"`
	MonthIndex        int             `json:"month_index"`
	SourceFile        string          `json:"source_file"`
	Income            decimal.Decimal `json:"income"`
	IncomeExplicit    bool            `json:"income_explicit"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	TotalInvested     decimal.Decimal `json:"total_invested"`
	Surplus           decimal.Decimal `json:"surplus"`
	TopCategory       string          `json:"top_category"`
	TopCategoryAmount decimal.Decimal `json:"top_category_amount"`
	TransactionCount  int             `json:"transaction_count"`
}

// PortfolioResponse is the dashboard overview: one summary per month plus
// portfolio-wide totals and the report of the last load.
type PortfolioResponse struct {
	State           session.State      `json:"state"`
	Months          []MonthSummary     `json:"months"`
	YearToDate      models.Totals      `json:"year_to_date"`
	MonthlyAverages models.Totals      `json:"monthly_averages"`
	Report          *models.LoadReport `json:"report"`
}

// MonthsResponse lists the loaded month names in calendar order.
type MonthsResponse struct {
	Months []string `json:"months"`
}

// Health reports liveness.
//
// Endpoint: GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetPortfolio returns the overview of every loaded month.
//
// Endpoint: GET /api/portfolio
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.portfolioResponse())
}

// ListMonths returns the loaded month names.
//
// Endpoint: GET /api/months
func (h *Handler) ListMonths(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, MonthsResponse{Months: h.session.Portfolio().MonthNames()})
}

// GetMonth returns one month's full record including its transactions.
//
// Endpoint: GET /api/months/{month}
// Error: 404 when the month is not loaded
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "month")
	record := h.session.Portfolio().Month(name)
	if record == nil {
		RespondError(w, http.StatusNotFound, "month not loaded", nil)
		return
	}
	RespondJSON(w, http.StatusOK, record)
}

// GetMetrics returns the derived metrics for the current snapshot.
//
// Endpoint: GET /api/metrics
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.session.Metrics())
}

// Refresh rescans the data directory and returns the new overview.
//
// Endpoint: POST /api/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if _, _, err := h.session.LoadOrRefresh(r.Context()); err != nil {
		h.respondPipelineError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, h.portfolioResponse())
}

// Upload accepts one month workbook as multipart field "file" and merges it
// into the portfolio.
//
// Endpoint: POST /api/upload
// Error: 400 on a bad filename or unreadable workbook
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		RespondError(w, http.StatusBadRequest, "missing form field 'file'", nil)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Failed to close uploaded file")
		}
	}()

	if _, _, err := h.session.Upload(r.Context(), header.Filename, file); err != nil {
		h.respondPipelineError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, h.portfolioResponse())
}

// DownloadTemplate serves a template workbook for download. Only the two
// shipped template names are served, anything else is rejected.
//
// Endpoint: GET /api/templates/{name}
// Error: 403 for names outside the allow-list, 404 when missing on disk
func (h *Handler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	requested := chi.URLParam(r, "name")

	var name string
	for _, allowed := range templateAllowList {
		if strings.EqualFold(requested, allowed) {
			name = allowed
			break
		}
	}
	if name == "" {
		RespondError(w, http.StatusForbidden, "not a downloadable template", nil)
		return
	}

	path := filepath.Join(h.templateDir, name)
	if !fileutils.FileExists(path) {
		RespondError(w, http.StatusNotFound, "template not generated yet", nil)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}

func (h *Handler) portfolioResponse() PortfolioResponse {
	portfolio := h.session.Portfolio()

	months := make([]MonthSummary, 0, len(portfolio.Months))
	for _, record := range portfolio.Months {
		months = append(months, MonthSummary{
			Month:             record.Month,
			MonthIndex:        record.MonthIndex,
			SourceFile:        record.SourceFile,
			Income:            record.Income,
			IncomeExplicit:    record.IncomeExplicit,
			TotalExpenses:     record.TotalExpenses,
			TotalInvested:     record.TotalInvested,
			Surplus:           record.Surplus,
			TopCategory:       record.TopCategory,
			TopCategoryAmount: record.TopCategoryAmount,
			TransactionCount:  len(record.Transactions),
		})
	}

	return PortfolioResponse{
		State:           h.session.State(),
		Months:          months,
		YearToDate:      portfolio.YearToDate(),
		MonthlyAverages: portfolio.MonthlyAverages(),
		Report:          h.session.Report(),
	}
}

// respondPipelineError maps pipeline errors onto HTTP statuses. Input
// problems come back verbatim as 400s; anything unexpected stays a generic
// 500 so internals never leak.
func (h *Handler) respondPipelineError(w http.ResponseWriter, err error) {
	var validationErr *budgeterror.ValidationError
	var monthErr *budgeterror.UnknownMonthError
	var unreadableErr *budgeterror.UnreadableFileError
	var missingDirErr *budgeterror.MissingDataDirectoryError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &monthErr), errors.As(err, &unreadableErr):
		RespondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &missingDirErr):
		RespondError(w, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		log.WithError(err).Error("Request failed")
		RespondError(w, http.StatusInternalServerError, "internal error", nil)
	}
}
