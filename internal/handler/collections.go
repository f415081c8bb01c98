package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kantin-pos/api/internal/database"
	"github.com/kantin-pos/api/internal/enum"
	"github.com/kantin-pos/api/internal/middleware"
	"github.com/kantin-pos/api/internal/service"
	"github.com/shopspring/decimal"
)

// CollectionListStore defines the database methods needed to list
// daily collections. Satisfied by *database.Queries.
type CollectionListStore interface {
	ListDailyCollectionsByDate(ctx context.Context, collectionDate pgtype.Date) ([]database.ListDailyCollectionsByDateRow, error)
}

// CollectionManager drives the daily collection lifecycle.
// Satisfied by *service.CollectionService.
type CollectionManager interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID, date pgtype.Date) (*service.DailyCollectionResult, error)
	Close(ctx context.Context, userID uuid.UUID, date pgtype.Date, notes pgtype.Text) (*service.DailyCollectionResult, error)
	Collect(ctx context.Context, adminID, cashierID uuid.UUID, date pgtype.Date, amount decimal.Decimal, notes pgtype.Text) (*service.CollectResult, error)
}

// CollectionHandler handles daily collection and cash pickup endpoints.
type CollectionHandler struct {
	service CollectionManager
	store   CollectionListStore
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(service CollectionManager, store CollectionListStore) *CollectionHandler {
	return &CollectionHandler{service: service, store: store}
}

// RegisterRoutes registers cashier-facing collection endpoints.
func (h *CollectionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/collections/daily", h.GetDaily)
	r.Post("/collections/daily", h.CloseDaily)
}

// RegisterAdminRoutes registers the admin cash pickup endpoints.
// Expected to be mounted inside an admin-only subrouter.
func (h *CollectionHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/collections/collect", h.ListForPickup)
	r.Post("/collections/collect", h.Collect)
}

// --- Request / Response types ---

type closeDailyRequest struct {
	UserID string `json:"userId"`
	Date   string `json:"date"`
	Notes  string `json:"notes"`
}

type collectRequest struct {
	AdminID         string      `json:"adminId"`
	CashierID       string      `json:"cashierId"`
	Date            string      `json:"date"`
	AmountCollected json.Number `json:"amountCollected"`
	Notes           string      `json:"notes"`
}

type collectionResponse struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"userId"`
	CollectionDate     string     `json:"collection_date"`
	State              string     `json:"state"`
	TotalSales         string     `json:"total_sales"`
	CashAmount         string     `json:"cash_amount"`
	TransactionCount   *int64     `json:"transaction_count,omitempty"`
	IsClosed           bool       `json:"is_closed"`
	ClosedAt           *time.Time `json:"closed_at,omitempty"`
	IsCollectedByAdmin bool       `json:"is_collected_by_admin"`
	CollectedAt        *time.Time `json:"collected_at,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type pickupRowResponse struct {
	collectionResponse
	CashierName     string `json:"cashier_name"`
	CashierUsername string `json:"cashier_username"`
	AmountCollected string `json:"amount_collected,omitempty"`
	CollectedByName string `json:"collected_by_name,omitempty"`
}

type cashCollectionResponse struct {
	ID                uuid.UUID `json:"id"`
	AdminID           uuid.UUID `json:"adminId"`
	CashierID         uuid.UUID `json:"cashierId"`
	CollectionDate    string    `json:"collection_date"`
	AmountCollected   string    `json:"amount_collected"`
	DailyCollectionID uuid.UUID `json:"daily_collection_id"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func toCollectionResponse(c database.DailyCollection) collectionResponse {
	state := enum.CollectionStateOpen
	switch {
	case c.IsCollectedByAdmin:
		state = enum.CollectionStateCollected
	case c.IsClosed:
		state = enum.CollectionStateClosed
	}

	resp := collectionResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		CollectionDate:     c.CollectionDate.Time.Format("2006-01-02"),
		State:              state,
		TotalSales:         numericToString(c.TotalSales),
		CashAmount:         numericToString(c.CashAmount),
		IsClosed:           c.IsClosed,
		IsCollectedByAdmin: c.IsCollectedByAdmin,
		Notes:              c.Notes.String,
		CreatedAt:          c.CreatedAt,
	}
	if c.ClosedAt.Valid {
		t := c.ClosedAt.Time
		resp.ClosedAt = &t
	}
	if c.CollectedAt.Valid {
		t := c.CollectedAt.Time
		resp.CollectedAt = &t
	}
	return resp
}

// --- Handlers ---

// GetDaily returns the cashier's collection for the date, creating an
// open one if it does not exist yet. While the collection is open the
// totals reflect the live sales log.
func (h *CollectionHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	userIDStr := r.URL.Query().Get("userId")
	if userIDStr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "User ID is required"})
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid userId"})
		return
	}

	// Cashiers only see their own drawer.
	if claims.Role != enum.RoleAdmin && userID != claims.UserID {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "cannot view another cashier's collection"})
		return
	}

	date, err := parseDateOrToday(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	result, err := h.service.GetOrCreate(r.Context(), userID, date)
	if err != nil {
		log.Printf("ERROR: get daily collection: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := toCollectionResponse(result.Collection)
	resp.TransactionCount = &result.TransactionCount

	writeJSON(w, http.StatusOK, map[string]interface{}{"collection": resp})
}

// CloseDaily closes the cashier's collection for the date, freezing
// its totals for admin pickup.
func (h *CollectionHandler) CloseDaily(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	var req closeDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "User ID is required"})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid userId"})
		return
	}

	if claims.Role != enum.RoleAdmin && userID != claims.UserID {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "cannot close another cashier's collection"})
		return
	}

	date, err := parseDateOrToday(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	notes := pgtype.Text{}
	if req.Notes != "" {
		notes = pgtype.Text{String: req.Notes, Valid: true}
	}

	result, err := h.service.Close(r.Context(), userID, date, notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCollectionNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "No collection found for this date"})
		case errors.Is(err, service.ErrAlreadyClosed):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Collection already closed"})
		default:
			log.Printf("ERROR: close daily collection: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	resp := toCollectionResponse(result.Collection)
	resp.TransactionCount = &result.TransactionCount

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collection": resp,
		"message":    "Daily collection closed successfully",
	})
}

// ListForPickup returns every cashier's collection for the date so the
// admin can see what is ready to be picked up.
func (h *CollectionHandler) ListForPickup(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateOrToday(r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	rows, err := h.store.ListDailyCollectionsByDate(r.Context(), date)
	if err != nil {
		log.Printf("ERROR: list daily collections: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]pickupRowResponse, len(rows))
	for i, row := range rows {
		item := pickupRowResponse{
			collectionResponse: toCollectionResponse(database.DailyCollection{
				ID:                 row.ID,
				UserID:             row.UserID,
				CollectionDate:     row.CollectionDate,
				TotalSales:         row.TotalSales,
				CashAmount:         row.CashAmount,
				IsClosed:           row.IsClosed,
				ClosedAt:           row.ClosedAt,
				IsCollectedByAdmin: row.IsCollectedByAdmin,
				CollectedBy:        row.CollectedBy,
				CollectedAt:        row.CollectedAt,
				Notes:              row.Notes,
				CreatedAt:          row.CreatedAt,
			}),
			CashierName:     row.CashierName,
			CashierUsername: row.CashierUsername,
			CollectedByName: row.CollectedByName.String,
		}
		if row.AmountCollected.Valid {
			item.AmountCollected = numericToString(row.AmountCollected)
		}
		resp[i] = item
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collections": resp,
		"date":        date.Time.Format("2006-01-02"),
	})
}

// Collect records an admin cash pickup against a closed collection.
func (h *CollectionHandler) Collect(w http.ResponseWriter, r *http.Request) {
	var req collectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.AdminID == "" || req.CashierID == "" || req.AmountCollected == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Admin ID, Cashier ID, and amount are required"})
		return
	}

	adminID, err := uuid.Parse(req.AdminID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid adminId"})
		return
	}

	cashierID, err := uuid.Parse(req.CashierID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid cashierId"})
		return
	}

	amount, err := decimal.NewFromString(req.AmountCollected.String())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid amountCollected"})
		return
	}

	date, err := parseDateOrToday(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	notes := pgtype.Text{}
	if req.Notes != "" {
		notes = pgtype.Text{String: req.Notes, Valid: true}
	}

	result, err := h.service.Collect(r.Context(), adminID, cashierID, date, amount, notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCollectionNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "No collection found for this cashier and date"})
		case errors.Is(err, service.ErrNotClosed):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Collection must be closed by cashier first"})
		case errors.Is(err, service.ErrAlreadyCollected):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Cash already collected for this date"})
		case errors.Is(err, service.ErrInvalidAmount):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amountCollected must be > 0"})
		default:
			log.Printf("ERROR: collect cash: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	cc := result.CashCollection
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cashCollection": cashCollectionResponse{
			ID:                cc.ID,
			AdminID:           cc.AdminID,
			CashierID:         cc.CashierID,
			CollectionDate:    cc.CollectionDate.Time.Format("2006-01-02"),
			AmountCollected:   numericToString(cc.AmountCollected),
			DailyCollectionID: cc.DailyCollectionID,
			Notes:             cc.Notes.String,
			CreatedAt:         cc.CreatedAt,
		},
		"message": "Cash collected successfully",
	})
}

// --- Helpers ---

// parseDateOrToday parses a YYYY-MM-DD date, defaulting to today when
// the value is empty.
func parseDateOrToday(s string) (pgtype.Date, error) {
	if s == "" {
		y, m, d := time.Now().Date()
		return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return pgtype.Date{}, err
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}
