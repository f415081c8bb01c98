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
	"github.com/kantin-pos/api/internal/ws"
)

// SaleListStore defines the database methods needed to list sales.
// Satisfied by *database.Queries; narrow interface for testability.
type SaleListStore interface {
	ListSales(ctx context.Context, arg database.ListSalesParams) ([]database.ListSalesRow, error)
	ListSaleItemsBySale(ctx context.Context, saleID uuid.UUID) ([]database.ListSaleItemsBySaleRow, error)
}

// SaleRecorder records a sale. Satisfied by *service.SaleService.
type SaleRecorder interface {
	RecordSale(ctx context.Context, req service.RecordSaleRequest) (*service.RecordSaleResult, error)
}

// SaleHandler handles sale endpoints.
type SaleHandler struct {
	service SaleRecorder
	store   SaleListStore
	hub     *ws.Hub
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(service SaleRecorder, store SaleListStore, hub *ws.Hub) *SaleHandler {
	return &SaleHandler{service: service, store: store, hub: hub}
}

// RegisterRoutes registers sale endpoints on the given Chi router.
func (h *SaleHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sales", h.Create)
	r.Get("/sales", h.List)
}

// --- Request / Response types ---

type createSaleRequest struct {
	UserID        string                  `json:"userId"`
	PaymentMethod string                  `json:"payment_method"`
	Items         []createSaleItemRequest `json:"items"`
}

type createSaleItemRequest struct {
	MenuItemID string      `json:"menu_item_id"`
	Quantity   int32       `json:"quantity"`
	UnitPrice  json.Number `json:"unit_price"`
}

type saleItemResponse struct {
	ID         uuid.UUID `json:"id"`
	MenuItemID uuid.UUID `json:"menu_item_id"`
	ItemName   string    `json:"item_name"`
	Quantity   int32     `json:"quantity"`
	UnitPrice  string    `json:"unit_price"`
	TotalPrice string    `json:"total_price"`
}

type saleResponse struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"userId"`
	CashierName   string             `json:"cashier_name,omitempty"`
	TotalAmount   string             `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	Items         []saleItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// --- Handlers ---

// Create records a completed sale with its line items.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Items are required"})
		return
	}

	// Cashiers record their own sales; the userId in the body must
	// match the token unless an admin is recording on their behalf.
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	cashierID := claims.UserID
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid userId"})
			return
		}
		if parsed != claims.UserID && claims.Role != enum.RoleAdmin {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "cannot record sales for another user"})
			return
		}
		cashierID = parsed
	}

	items := make([]service.RecordSaleItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.RecordSaleItemRequest{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.String(),
		}
	}

	result, err := h.service.RecordSale(r.Context(), service.RecordSaleRequest{
		CashierID:     cashierID,
		PaymentMethod: req.PaymentMethod,
		Items:         items,
	})
	if err != nil {
		h.writeRecordSaleError(w, err)
		return
	}

	resp := saleResponse{
		ID:            result.Sale.ID,
		UserID:        result.Sale.UserID,
		CashierName:   result.User.Name,
		TotalAmount:   numericToString(result.Sale.TotalAmount),
		PaymentMethod: result.Sale.PaymentMethod,
		CreatedAt:     result.Sale.CreatedAt,
	}
	for _, item := range result.Items {
		resp.Items = append(resp.Items, saleItemResponse{
			ID:         item.Item.ID,
			MenuItemID: item.Item.MenuItemID,
			ItemName:   item.ItemName,
			Quantity:   item.Item.Quantity,
			UnitPrice:  numericToString(item.Item.UnitPrice),
			TotalPrice: numericToString(item.Item.TotalPrice),
		})
	}

	h.broadcastSaleCreated(resp)

	// The POS frontend reads the sale fields off the top level of the
	// 201 body, so the response is not wrapped.
	writeJSON(w, http.StatusCreated, struct {
		saleResponse
		Message string `json:"message"`
	}{resp, "Sale recorded successfully"})
}

// List returns sales, optionally filtered by cashier and date.
// Non-admin callers only see their own sales.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}

	params := database.ListSalesParams{}

	if userIDStr := r.URL.Query().Get("userId"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid userId"})
			return
		}
		params.UserID = pgtype.UUID{Bytes: userID, Valid: true}
	}

	// Cashiers are always scoped to their own sales.
	if claims.Role != enum.RoleAdmin {
		params.UserID = pgtype.UUID{Bytes: claims.UserID, Valid: true}
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		params.SaleDate = pgtype.Date{Time: date, Valid: true}
	}

	sales, err := h.store.ListSales(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: list sales: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]saleResponse, len(sales))
	for i, s := range sales {
		items, err := h.store.ListSaleItemsBySale(r.Context(), s.ID)
		if err != nil {
			log.Printf("ERROR: list sale items: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}

		sr := saleResponse{
			ID:            s.ID,
			UserID:        s.UserID,
			CashierName:   s.UserName,
			TotalAmount:   numericToString(s.TotalAmount),
			PaymentMethod: s.PaymentMethod,
			CreatedAt:     s.CreatedAt,
		}
		for _, item := range items {
			sr.Items = append(sr.Items, saleItemResponse{
				ID:         item.ID,
				MenuItemID: item.MenuItemID,
				ItemName:   item.ItemName,
				Quantity:   item.Quantity,
				UnitPrice:  numericToString(item.UnitPrice),
				TotalPrice: numericToString(item.TotalPrice),
			})
		}
		resp[i] = sr
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func (h *SaleHandler) writeRecordSaleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyItems):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Items are required"})
	case errors.Is(err, service.ErrCashierNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
	case errors.Is(err, service.ErrMenuItemNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Menu item not found"})
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidUnitPrice),
		errors.Is(err, service.ErrInvalidMenuItemID),
		errors.Is(err, service.ErrInvalidPaymentMethod):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: record sale: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func (h *SaleHandler) broadcastSaleCreated(sale saleResponse) {
	if h.hub == nil {
		return
	}
	payload, err := json.Marshal(sale)
	if err != nil {
		log.Printf("ERROR: marshal sale event: %v", err)
		return
	}
	h.hub.Broadcast(ws.Event{Type: "sale.created", Payload: payload})
}
