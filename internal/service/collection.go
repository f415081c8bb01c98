package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kantin-pos/api/internal/database"
	"github.com/shopspring/decimal"
)

// Errors returned by the collection service.
var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrAlreadyClosed      = errors.New("collection already closed")
	ErrNotClosed          = errors.New("collection must be closed first")
	ErrAlreadyCollected   = errors.New("cash already collected")
	ErrInvalidAmount      = errors.New("amount must be > 0")
)

// CollectionStore defines the DB methods needed for the daily
// collection lifecycle. Satisfied by *database.Queries.
type CollectionStore interface {
	CreateDailyCollection(ctx context.Context, arg database.CreateDailyCollectionParams) (database.DailyCollection, error)
	GetDailyCollectionForUpdate(ctx context.Context, arg database.GetDailyCollectionForUpdateParams) (database.DailyCollection, error)
	SumSalesByCashierAndDate(ctx context.Context, arg database.SumSalesByCashierAndDateParams) (database.SumSalesByCashierAndDateRow, error)
	UpdateDailyCollectionTotals(ctx context.Context, arg database.UpdateDailyCollectionTotalsParams) (database.DailyCollection, error)
	CloseDailyCollection(ctx context.Context, arg database.CloseDailyCollectionParams) (database.DailyCollection, error)
	CreateCashCollection(ctx context.Context, arg database.CreateCashCollectionParams) (database.CashCollection, error)
	MarkDailyCollectionCollected(ctx context.Context, arg database.MarkDailyCollectionCollectedParams) (database.DailyCollection, error)
}

// NewCollectionStore creates a CollectionStore from a DBTX (pool or tx).
type NewCollectionStore func(db database.DBTX) CollectionStore

// DailyCollectionResult is a daily collection row with the live
// transaction count from the sales log.
type DailyCollectionResult struct {
	Collection       database.DailyCollection
	TransactionCount int64
}

// CollectResult is the outcome of an admin cash pickup.
type CollectResult struct {
	CashCollection  database.CashCollection
	DailyCollection database.DailyCollection
}

// CollectionService manages the daily collection lifecycle:
// open (sales accumulate), closed (cashier end of day), collected
// (admin picked up the cash). Each transition happens inside a
// transaction with the row locked, so concurrent closes or collects
// cannot both succeed.
type CollectionService struct {
	pool     TxBeginner
	newStore NewCollectionStore
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(pool TxBeginner, newStore NewCollectionStore) *CollectionService {
	return &CollectionService{pool: pool, newStore: newStore}
}

// GetOrCreate returns the cashier's collection for the date, creating
// an open one if none exists. While the collection is still open the
// cached totals are refreshed from the sales log, so the response
// always reflects what was actually sold. Closed collections are not
// reconciled on read; the totals fixed at close stand, though a sale
// recorded after close still bumps the cached columns via its upsert.
func (s *CollectionService) GetOrCreate(ctx context.Context, userID uuid.UUID, date pgtype.Date) (*DailyCollectionResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	collection, err := store.CreateDailyCollection(ctx, database.CreateDailyCollectionParams{
		UserID:         userID,
		CollectionDate: date,
	})
	if err != nil {
		return nil, fmt.Errorf("create daily collection: %w", err)
	}

	sums, err := store.SumSalesByCashierAndDate(ctx, database.SumSalesByCashierAndDateParams{
		UserID:   userID,
		SaleDate: date,
	})
	if err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}

	if !collection.IsClosed {
		collection, err = store.UpdateDailyCollectionTotals(ctx, database.UpdateDailyCollectionTotalsParams{
			ID:         collection.ID,
			TotalSales: sums.TotalSales,
			CashAmount: sums.CashSales,
		})
		if err != nil {
			return nil, fmt.Errorf("update totals: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &DailyCollectionResult{
		Collection:       collection,
		TransactionCount: sums.TransactionCount,
	}, nil
}

// Close transitions the cashier's collection for the date from open to
// closed. The row is locked before the check so two concurrent closes
// cannot both pass, and the totals are recomputed from the sales log
// one final time before they freeze.
func (s *CollectionService) Close(ctx context.Context, userID uuid.UUID, date pgtype.Date, notes pgtype.Text) (*DailyCollectionResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	locked, err := store.GetDailyCollectionForUpdate(ctx, database.GetDailyCollectionForUpdateParams{
		UserID:         userID,
		CollectionDate: date,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("lock collection: %w", err)
	}
	if locked.IsClosed {
		return nil, ErrAlreadyClosed
	}

	sums, err := store.SumSalesByCashierAndDate(ctx, database.SumSalesByCashierAndDateParams{
		UserID:   userID,
		SaleDate: date,
	})
	if err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}

	closed, err := store.CloseDailyCollection(ctx, database.CloseDailyCollectionParams{
		ID:         locked.ID,
		TotalSales: sums.TotalSales,
		CashAmount: sums.CashSales,
		Notes:      notes,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlreadyClosed
		}
		return nil, fmt.Errorf("close collection: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &DailyCollectionResult{
		Collection:       closed,
		TransactionCount: sums.TransactionCount,
	}, nil
}

// Collect records an admin cash pickup against a closed collection.
// The collection must be closed and not yet collected; the row is
// locked before the checks. The pickup amount is what the admin
// actually received, which may differ from the recorded cash_amount.
func (s *CollectionService) Collect(ctx context.Context, adminID, cashierID uuid.UUID, date pgtype.Date, amount decimal.Decimal, notes pgtype.Text) (*CollectResult, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	locked, err := store.GetDailyCollectionForUpdate(ctx, database.GetDailyCollectionForUpdateParams{
		UserID:         cashierID,
		CollectionDate: date,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("lock collection: %w", err)
	}
	if !locked.IsClosed {
		return nil, ErrNotClosed
	}
	if locked.IsCollectedByAdmin {
		return nil, ErrAlreadyCollected
	}

	cashCollection, err := store.CreateCashCollection(ctx, database.CreateCashCollectionParams{
		AdminID:           adminID,
		CashierID:         cashierID,
		CollectionDate:    date,
		AmountCollected:   decimalToNumeric(amount),
		DailyCollectionID: locked.ID,
		Notes:             notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create cash collection: %w", err)
	}

	marked, err := store.MarkDailyCollectionCollected(ctx, database.MarkDailyCollectionCollectedParams{
		ID:          locked.ID,
		CollectedBy: pgtype.UUID{Bytes: adminID, Valid: true},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlreadyCollected
		}
		return nil, fmt.Errorf("mark collected: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &CollectResult{
		CashCollection:  cashCollection,
		DailyCollection: marked,
	}, nil
}
