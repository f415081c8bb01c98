package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kantin-pos/api/internal/database"
	"github.com/kantin-pos/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Errors returned by the sale service.
var (
	ErrEmptyItems           = errors.New("items are required")
	ErrInvalidQuantity      = errors.New("quantity must be > 0")
	ErrInvalidUnitPrice     = errors.New("unit_price must be >= 0")
	ErrInvalidMenuItemID    = errors.New("invalid menu_item_id")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrInvalidPaymentMethod = errors.New("invalid payment_method")
	ErrCashierNotFound      = errors.New("user not found")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SaleStore defines the DB methods needed to record sales.
// Satisfied by *database.Queries (and its WithTx variant).
type SaleStore interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (database.MenuItem, error)
	CreateSale(ctx context.Context, arg database.CreateSaleParams) (database.Sale, error)
	CreateSaleItem(ctx context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error)
	AddSaleToDailyCollection(ctx context.Context, arg database.AddSaleToDailyCollectionParams) (database.DailyCollection, error)
}

// NewSaleStore creates a SaleStore from a DBTX (pool or tx).
type NewSaleStore func(db database.DBTX) SaleStore

// RecordSaleRequest is the validated input for recording a sale.
type RecordSaleRequest struct {
	CashierID     uuid.UUID
	PaymentMethod string
	Items         []RecordSaleItemRequest
}

// RecordSaleItemRequest is a single line item in the sale.
type RecordSaleItemRequest struct {
	MenuItemID string
	Quantity   int32
	UnitPrice  string
}

// SaleItemResult is a created line item with its menu item info.
type SaleItemResult struct {
	Item            database.SaleItem
	ItemName        string
	ItemDescription pgtype.Text
}

// RecordSaleResult is the full created sale with line items.
type RecordSaleResult struct {
	Sale  database.Sale
	User  database.User
	Items []SaleItemResult
}

// SaleService records completed transactions in the sales log.
type SaleService struct {
	pool     TxBeginner
	newStore NewSaleStore
}

// NewSaleService creates a new SaleService.
func NewSaleService(pool TxBeginner, newStore NewSaleStore) *SaleService {
	return &SaleService{pool: pool, newStore: newStore}
}

// preparedItem holds a validated line item ready to insert.
type preparedItem struct {
	menuItemID      uuid.UUID
	itemName        string
	itemDescription pgtype.Text
	quantity        int32
	unitPrice       decimal.Decimal
	totalPrice      decimal.Decimal
}

// RecordSale validates the line items, computes the total with decimal
// arithmetic, and inserts the sale, its items, and the daily collection
// upsert as a single transaction. The collection upsert adds the full
// amount to total_sales and, for cash sales only, to cash_amount.
func (s *SaleService) RecordSale(ctx context.Context, req RecordSaleRequest) (*RecordSaleResult, error) {
	if !isValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	user, err := store.GetUserByID(ctx, req.CashierID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCashierNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	// --- Validate items and compute the total ---
	totalAmount := decimal.Zero
	var items []preparedItem

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidQuantity)
		}

		menuItemID, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidMenuItemID)
		}

		unitPrice, err := decimal.NewFromString(item.UnitPrice)
		if err != nil || unitPrice.IsNegative() {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrInvalidUnitPrice)
		}

		menuItem, err := store.GetMenuItem(ctx, menuItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("items[%d]: %w", i, ErrMenuItemNotFound)
			}
			return nil, fmt.Errorf("items[%d]: get menu item: %w", i, err)
		}

		totalPrice := unitPrice.Mul(decimal.NewFromInt32(item.Quantity))
		totalAmount = totalAmount.Add(totalPrice)

		items = append(items, preparedItem{
			menuItemID:      menuItemID,
			itemName:        menuItem.Name,
			itemDescription: menuItem.Description,
			quantity:        item.Quantity,
			unitPrice:       unitPrice,
			totalPrice:      totalPrice,
		})
	}

	// --- Insert sale ---
	sale, err := store.CreateSale(ctx, database.CreateSaleParams{
		UserID:        req.CashierID,
		TotalAmount:   decimalToNumeric(totalAmount),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	// --- Insert line items ---
	var itemResults []SaleItemResult
	for _, pi := range items {
		saleItem, err := store.CreateSaleItem(ctx, database.CreateSaleItemParams{
			SaleID:     sale.ID,
			MenuItemID: pi.menuItemID,
			Quantity:   pi.quantity,
			UnitPrice:  decimalToNumeric(pi.unitPrice),
			TotalPrice: decimalToNumeric(pi.totalPrice),
		})
		if err != nil {
			return nil, fmt.Errorf("create sale item: %w", err)
		}
		itemResults = append(itemResults, SaleItemResult{
			Item:            saleItem,
			ItemName:        pi.itemName,
			ItemDescription: pi.itemDescription,
		})
	}

	// --- Bump the cashier's daily collection (cache of the sales log) ---
	cashAmount := decimal.Zero
	if req.PaymentMethod == enum.PaymentMethodCash {
		cashAmount = totalAmount
	}
	_, err = store.AddSaleToDailyCollection(ctx, database.AddSaleToDailyCollectionParams{
		UserID:         req.CashierID,
		CollectionDate: dateOf(time.Now()),
		TotalSales:     decimalToNumeric(totalAmount),
		CashAmount:     decimalToNumeric(cashAmount),
	})
	if err != nil {
		return nil, fmt.Errorf("update daily collection: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &RecordSaleResult{
		Sale:  sale,
		User:  user,
		Items: itemResults,
	}, nil
}

// --- Helpers ---

func isValidPaymentMethod(s string) bool {
	switch s {
	case enum.PaymentMethodCash, enum.PaymentMethodCard:
		return true
	}
	return false
}

// dateOf truncates a timestamp to its UTC calendar date for the DATE
// column. The sales aggregate queries bucket by UTC too, so a
// near-midnight sale lands on the same collection date both ways.
func dateOf(t time.Time) pgtype.Date {
	y, m, d := t.UTC().Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
