package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kantin-pos/api/internal/auth"
	"github.com/kantin-pos/api/internal/database"
	"github.com/kantin-pos/api/internal/handler"
	"github.com/kantin-pos/api/internal/middleware"
	"github.com/kantin-pos/api/internal/service"
	"github.com/shopspring/decimal"
)

// --- Mock TxBeginner ---

type mockTx struct{}

func (m *mockTx) Commit(ctx context.Context) error   { return nil }
func (m *mockTx) Rollback(ctx context.Context) error { return nil }
func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, nil
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, nil
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return nil
}
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *mockTx) Conn() *pgx.Conn { return nil }

type mockPool struct{}

func (m *mockPool) Begin(ctx context.Context) (pgx.Tx, error) {
	return &mockTx{}, nil
}

// --- Test helpers ---

const testJWTSecret = "test-secret-for-handlers"

// numericToDecimal converts pgtype.Numeric to decimal.Decimal (for tests)
func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(val.(string))
}

// decimalToNumeric converts decimal.Decimal to pgtype.Numeric (for tests)
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.String())
	return n
}

func doAuthRequest(t *testing.T, router http.Handler, method, path string, body interface{}, claims *auth.Claims) *httptest.ResponseRecorder {
	t.Helper()

	// Generate a real JWT token from claims
	token, err := auth.GenerateToken(testJWTSecret, claims.UserID, claims.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeListResponse(t *testing.T, rr *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var resp []interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	return resp
}

// --- Mock sale store ---

// mockSaleStore backs both the sale service and the list queries.
type mockSaleStore struct {
	users       map[uuid.UUID]database.User
	menuItems   map[uuid.UUID]database.MenuItem
	sales       map[uuid.UUID]database.Sale
	saleItems   map[uuid.UUID]database.SaleItem
	collections map[string]database.DailyCollection // keyed by userID|date
}

func newMockSaleStore() *mockSaleStore {
	return &mockSaleStore{
		users:       make(map[uuid.UUID]database.User),
		menuItems:   make(map[uuid.UUID]database.MenuItem),
		sales:       make(map[uuid.UUID]database.Sale),
		saleItems:   make(map[uuid.UUID]database.SaleItem),
		collections: make(map[string]database.DailyCollection),
	}
}

func collectionKey(userID uuid.UUID, date pgtype.Date) string {
	return userID.String() + "|" + date.Time.Format("2006-01-02")
}

func (m *mockSaleStore) GetUserByID(_ context.Context, id uuid.UUID) (database.User, error) {
	u, ok := m.users[id]
	if !ok {
		return database.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockSaleStore) GetMenuItem(_ context.Context, id uuid.UUID) (database.MenuItem, error) {
	item, ok := m.menuItems[id]
	if !ok {
		return database.MenuItem{}, pgx.ErrNoRows
	}
	return item, nil
}

func (m *mockSaleStore) CreateSale(_ context.Context, arg database.CreateSaleParams) (database.Sale, error) {
	s := database.Sale{
		ID:            uuid.New(),
		UserID:        arg.UserID,
		TotalAmount:   arg.TotalAmount,
		PaymentMethod: arg.PaymentMethod,
		CreatedAt:     time.Now(),
	}
	m.sales[s.ID] = s
	return s, nil
}

func (m *mockSaleStore) CreateSaleItem(_ context.Context, arg database.CreateSaleItemParams) (database.SaleItem, error) {
	si := database.SaleItem{
		ID:         uuid.New(),
		SaleID:     arg.SaleID,
		MenuItemID: arg.MenuItemID,
		Quantity:   arg.Quantity,
		UnitPrice:  arg.UnitPrice,
		TotalPrice: arg.TotalPrice,
		CreatedAt:  time.Now(),
	}
	m.saleItems[si.ID] = si
	return si, nil
}

func (m *mockSaleStore) AddSaleToDailyCollection(_ context.Context, arg database.AddSaleToDailyCollectionParams) (database.DailyCollection, error) {
	key := collectionKey(arg.UserID, arg.CollectionDate)
	c, ok := m.collections[key]
	if !ok {
		c = database.DailyCollection{
			ID:             uuid.New(),
			UserID:         arg.UserID,
			CollectionDate: arg.CollectionDate,
			TotalSales:     arg.TotalSales,
			CashAmount:     arg.CashAmount,
			CreatedAt:      time.Now(),
		}
	} else {
		total, _ := numericToDecimal(c.TotalSales)
		cash, _ := numericToDecimal(c.CashAmount)
		addTotal, _ := numericToDecimal(arg.TotalSales)
		addCash, _ := numericToDecimal(arg.CashAmount)
		c.TotalSales = decimalToNumeric(total.Add(addTotal))
		c.CashAmount = decimalToNumeric(cash.Add(addCash))
	}
	m.collections[key] = c
	return c, nil
}

func (m *mockSaleStore) ListSales(_ context.Context, arg database.ListSalesParams) ([]database.ListSalesRow, error) {
	var rows []database.ListSalesRow
	for _, s := range m.sales {
		if arg.UserID.Valid && s.UserID != uuid.UUID(arg.UserID.Bytes) {
			continue
		}
		u := m.users[s.UserID]
		rows = append(rows, database.ListSalesRow{
			ID:            s.ID,
			UserID:        s.UserID,
			TotalAmount:   s.TotalAmount,
			PaymentMethod: s.PaymentMethod,
			CreatedAt:     s.CreatedAt,
			UserName:      u.Name,
			UserEmail:     u.Email,
		})
	}
	return rows, nil
}

func (m *mockSaleStore) ListSaleItemsBySale(_ context.Context, saleID uuid.UUID) ([]database.ListSaleItemsBySaleRow, error) {
	var rows []database.ListSaleItemsBySaleRow
	for _, si := range m.saleItems {
		if si.SaleID != saleID {
			continue
		}
		item := m.menuItems[si.MenuItemID]
		rows = append(rows, database.ListSaleItemsBySaleRow{
			ID:         si.ID,
			SaleID:     si.SaleID,
			MenuItemID: si.MenuItemID,
			Quantity:   si.Quantity,
			UnitPrice:  si.UnitPrice,
			TotalPrice: si.TotalPrice,
			CreatedAt:  si.CreatedAt,
			ItemName:   item.Name,
		})
	}
	return rows, nil
}

func (m *mockSaleStore) addUser(role string) database.User {
	u := database.User{
		ID:       uuid.New(),
		Username: "user-" + uuid.NewString()[:8],
		Name:     "Test User",
		Email:    "user@kantin.local",
		Role:     role,
	}
	m.users[u.ID] = u
	return u
}

func (m *mockSaleStore) addMenuItem(name, price string) database.MenuItem {
	item := database.MenuItem{
		ID:          uuid.New(),
		CategoryID:  uuid.New(),
		Name:        name,
		Price:       decimalToNumeric(decimal.RequireFromString(price)),
		IsAvailable: true,
	}
	m.menuItems[item.ID] = item
	return item
}

func setupSaleRouter(store *mockSaleStore) *chi.Mux {
	svc := service.NewSaleService(&mockPool{}, func(db database.DBTX) service.SaleStore {
		return store
	})
	h := handler.NewSaleHandler(svc, store, nil)
	r := chi.NewRouter()
	r.Use(middleware.Authenticate(testJWTSecret))
	h.RegisterRoutes(r)
	return r
}

// --- Create sale tests ---

func TestCreateSale_HappyPath(t *testing.T) {
	store := newMockSaleStore()
	cashier := store.addUser("cashier")
	item := store.addMenuItem("Nasi Goreng", "5.00")
	router := setupSaleRouter(store)

	claims := &auth.Claims{UserID: cashier.ID, Role: "cashier"}
	rr := doAuthRequest(t, router, "POST", "/sales", map[string]interface{}{
		"userId":         cashier.ID.String(),
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID.String(), "quantity": 2, "unit_price": 5.00},
		},
	}, claims)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	// Sale fields live at the top level of the body; the POS frontend
	// reads them there.
	resp := decodeResponse(t, rr)
	if resp["total_amount"] != "10.00" {
		t.Errorf("total_amount: got %v, want 10.00", resp["total_amount"])
	}
	if resp["payment_method"] != "cash" {
		t.Errorf("payment_method: got %v, want cash", resp["payment_method"])
	}
	items := resp["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	// Drawer accumulated the cash
	var coll database.DailyCollection
	for _, c := range store.collections {
		coll = c
	}
	if got, _ := numericToDecimal(coll.CashAmount); !got.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("collection cash_amount: got %v, want 10.00", got)
	}
}

func TestCreateSale_EmptyItems(t *testing.T) {
	store := newMockSaleStore()
	cashier := store.addUser("cashier")
	router := setupSaleRouter(store)

	claims := &auth.Claims{UserID: cashier.ID, Role: "cashier"}
	rr := doAuthRequest(t, router, "POST", "/sales", map[string]interface{}{
		"userId":         cashier.ID.String(),
		"payment_method": "cash",
		"items":          []map[string]interface{}{},
	}, claims)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	resp := decodeResponse(t, rr)
	if resp["error"] != "Items are required" {
		t.Errorf("error: got %v, want 'Items are required'", resp["error"])
	}
}

func TestCreateSale_ForAnotherUserForbidden(t *testing.T) {
	store := newMockSaleStore()
	cashier := store.addUser("cashier")
	other := store.addUser("cashier")
	item := store.addMenuItem("Es Teh", "4000.00")
	router := setupSaleRouter(store)

	claims := &auth.Claims{UserID: cashier.ID, Role: "cashier"}
	rr := doAuthRequest(t, router, "POST", "/sales", map[string]interface{}{
		"userId":         other.ID.String(),
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID.String(), "quantity": 1, "unit_price": 4000},
		},
	}, claims)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestCreateSale_AdminForAnotherUser(t *testing.T) {
	store := newMockSaleStore()
	admin := store.addUser("admin")
	cashier := store.addUser("cashier")
	item := store.addMenuItem("Es Teh", "4000.00")
	router := setupSaleRouter(store)

	claims := &auth.Claims{UserID: admin.ID, Role: "admin"}
	rr := doAuthRequest(t, router, "POST", "/sales", map[string]interface{}{
		"userId":         cashier.ID.String(),
		"payment_method": "card",
		"items": []map[string]interface{}{
			{"menu_item_id": item.ID.String(), "quantity": 1, "unit_price": 4000},
		},
	}, claims)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	resp := decodeResponse(t, rr)
	if resp["userId"] != cashier.ID.String() {
		t.Errorf("userId: got %v, want %v", resp["userId"], cashier.ID)
	}
}

func TestCreateSale_UnknownMenuItem(t *testing.T) {
	store := newMockSaleStore()
	cashier := store.addUser("cashier")
	router := setupSaleRouter(store)

	claims := &auth.Claims{UserID: cashier.ID, Role: "cashier"}
	rr := doAuthRequest(t, router, "POST", "/sales", map[string]interface{}{
		"userId":         cashier.ID.String(),
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"menu_item_id": uuid.NewString(), "quantity": 1, "unit_price": 5.00},
		},
	}, claims)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCreateSale_MissingAuth(t *testing.T) {
	store := newMockSaleStore()
	router := setupSaleRouter(store)

	rr := doRequest(t, router, "POST", "/sales", map[string]interface{}{
		"payment_method": "cash",
	})

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

// --- List sales tests ---

func TestListSales_CashierScopedToOwn(t *testing.T) {
	store := newMockSaleStore()
	cashier := store.addUser("cashier")
	other := store.addUser("cashier")
	item := store.addMenuItem("Nasi Goreng", "5.00")
	router := setupSaleRouter(store)

	// One sale each
	for _, u := range []database.User{cashier, other} {
		claims := &auth.Claims{UserID: u.ID, Role: "cashier"}
		rr := doAuthRequest(t, router, "POST", "/sales", map[string]interface{}{
			"payment_method": "cash",
			"items": []map[string]interface{}{
				{"menu_item_id": item.ID.String(), "quantity": 1, "unit_price": 5.00},
			},
		}, claims)
		if rr.Code != http.StatusCreated {
			t.Fatalf("seed sale: got %d; body: %s", rr.Code, rr.Body.String())
		}
	}

	claims := &auth.Claims{UserID: cashier.ID, Role: "cashier"}
	rr := doAuthRequest(t, router, "GET", "/sales", nil, claims)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}

	sales := decodeListResponse(t, rr)
	if len(sales) != 1 {
		t.Fatalf("expected 1 sale, got %d", len(sales))
	}
	sale := sales[0].(map[string]interface{})
	if sale["userId"] != cashier.ID.String() {
		t.Errorf("userId: got %v, want %v", sale["userId"], cashier.ID)
	}
}

func TestListSales_AdminSeesAll(t *testing.T) {
	store := newMockSaleStore()
	admin := store.addUser("admin")
	c1 := store.addUser("cashier")
	c2 := store.addUser("cashier")
	item := store.addMenuItem("Nasi Goreng", "5.00")
	router := setupSaleRouter(store)

	for _, u := range []database.User{c1, c2} {
		claims := &auth.Claims{UserID: u.ID, Role: "cashier"}
		doAuthRequest(t, router, "POST", "/sales", map[string]interface{}{
			"payment_method": "cash",
			"items": []map[string]interface{}{
				{"menu_item_id": item.ID.String(), "quantity": 1, "unit_price": 5.00},
			},
		}, claims)
	}

	claims := &auth.Claims{UserID: admin.ID, Role: "admin"}
	rr := doAuthRequest(t, router, "GET", "/sales", nil, claims)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}

	sales := decodeListResponse(t, rr)
	if len(sales) != 2 {
		t.Errorf("expected 2 sales, got %d", len(sales))
	}
}
