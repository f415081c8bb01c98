package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kantin-pos/api/internal/database"
	"github.com/kantin-pos/api/internal/enum"
	"github.com/kantin-pos/api/internal/middleware"
)

// ReportsStore defines the database methods needed by report handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ReportsStore interface {
	GetDailySalesSummary(ctx context.Context, arg database.GetDailySalesSummaryParams) ([]database.GetDailySalesSummaryRow, error)
	GetPopularItems(ctx context.Context, arg database.GetPopularItemsParams) ([]database.GetPopularItemsRow, error)
	GetSalesByCashier(ctx context.Context, arg database.GetSalesByCashierParams) ([]database.GetSalesByCashierRow, error)
}

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	store ReportsStore
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(store ReportsStore) *ReportsHandler {
	return &ReportsHandler{store: store}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports", h.Get)
}

// RegisterAdminRoutes registers admin-only report endpoints.
func (h *ReportsHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/reports/cashiers", h.SalesByCashier)
}

// --- Response types ---

type dailySummaryResponse struct {
	Date              string `json:"date"`
	TotalTransactions int64  `json:"total_transactions"`
	TotalRevenue      string `json:"total_revenue"`
	AvgTransaction    string `json:"avg_transaction"`
	ActiveCashiers    int64  `json:"active_cashiers"`
}

type popularItemResponse struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	CategoryName string `json:"category_name"`
	TotalSold    int64  `json:"total_sold"`
	TotalRevenue string `json:"total_revenue"`
	TimesOrdered int64  `json:"times_ordered"`
}

type cashierSalesResponse struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	TotalTransactions int64  `json:"total_transactions"`
	TotalRevenue      string `json:"total_revenue"`
}

// --- Handlers ---

// Get returns a sales report. The type query param selects the report:
// "daily" for per-day summaries, "popular" for top selling items.
// Cashiers are always scoped to their own sales; admins may pass
// userId to scope, or omit it for all cashiers.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	startDate, endDate, err := parseReportDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	userID := pgtype.UUID{}
	if claims.Role != enum.RoleAdmin {
		userID = pgtype.UUID{Bytes: claims.UserID, Valid: true}
	} else if s := r.URL.Query().Get("userId"); s != "" {
		parsed, err := uuid.Parse(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid userId"})
			return
		}
		userID = pgtype.UUID{Bytes: parsed, Valid: true}
	}

	reportType := r.URL.Query().Get("type")
	if reportType == "" {
		reportType = enum.ReportTypeDaily
	}

	switch reportType {
	case enum.ReportTypeDaily:
		h.dailySummary(w, r, startDate, endDate, userID)
	case enum.ReportTypePopular:
		h.popularItems(w, r, startDate, endDate, userID)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid report type"})
	}
}

func (h *ReportsHandler) dailySummary(w http.ResponseWriter, r *http.Request, startDate, endDate pgtype.Date, userID pgtype.UUID) {
	rows, err := h.store.GetDailySalesSummary(r.Context(), database.GetDailySalesSummaryParams{
		StartDate: startDate,
		EndDate:   endDate,
		UserID:    userID,
	})
	if err != nil {
		log.Printf("ERROR: get daily sales summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]dailySummaryResponse, len(rows))
	for i, row := range rows {
		date := "N/A"
		if row.SaleDate.Valid {
			date = row.SaleDate.Time.Format("2006-01-02")
		}
		resp[i] = dailySummaryResponse{
			Date:              date,
			TotalTransactions: row.TotalTransactions,
			TotalRevenue:      numericToString(row.TotalRevenue),
			AvgTransaction:    numericToString(row.AvgTransaction),
			ActiveCashiers:    row.ActiveCashiers,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"type":   enum.ReportTypeDaily,
		"report": resp,
	})
}

func (h *ReportsHandler) popularItems(w http.ResponseWriter, r *http.Request, startDate, endDate pgtype.Date, userID pgtype.UUID) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := h.store.GetPopularItems(r.Context(), database.GetPopularItemsParams{
		StartDate: startDate,
		EndDate:   endDate,
		UserID:    userID,
		Limit:     int32(limit),
	})
	if err != nil {
		log.Printf("ERROR: get popular items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]popularItemResponse, len(rows))
	for i, row := range rows {
		resp[i] = popularItemResponse{
			Name:         row.Name,
			Price:        numericToString(row.Price),
			CategoryName: row.CategoryName,
			TotalSold:    row.TotalSold,
			TotalRevenue: numericToString(row.TotalRevenue),
			TimesOrdered: row.TimesOrdered,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"type":   enum.ReportTypePopular,
		"report": resp,
	})
}

// SalesByCashier returns per-cashier totals for a date range.
func (h *ReportsHandler) SalesByCashier(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, err := parseReportDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := h.store.GetSalesByCashier(r.Context(), database.GetSalesByCashierParams{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		log.Printf("ERROR: get sales by cashier: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]cashierSalesResponse, len(rows))
	for i, row := range rows {
		resp[i] = cashierSalesResponse{
			Name:              row.Name,
			Email:             row.Email,
			TotalTransactions: row.TotalTransactions,
			TotalRevenue:      numericToString(row.TotalRevenue),
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"cashiers": resp})
}

// --- Helpers ---

// parseReportDateRange parses startDate and endDate query params.
// Defaults to the last 30 days when absent. Both bounds are inclusive.
func parseReportDateRange(r *http.Request) (pgtype.Date, pgtype.Date, error) {
	const layout = "2006-01-02"

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -30)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if s := r.URL.Query().Get("startDate"); s != "" {
		t, err := time.Parse(layout, s)
		if err != nil {
			return pgtype.Date{}, pgtype.Date{}, fmt.Errorf("invalid startDate format: %w", err)
		}
		start = t
	}

	if s := r.URL.Query().Get("endDate"); s != "" {
		t, err := time.Parse(layout, s)
		if err != nil {
			return pgtype.Date{}, pgtype.Date{}, fmt.Errorf("invalid endDate format: %w", err)
		}
		end = t
	}

	if start.After(end) {
		return pgtype.Date{}, pgtype.Date{}, fmt.Errorf("startDate must not be after endDate")
	}

	return pgtype.Date{Time: start, Valid: true}, pgtype.Date{Time: end, Valid: true}, nil
}
