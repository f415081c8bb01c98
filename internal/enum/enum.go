package enum

// ── State labels (derived from is_closed / is_collected_by_admin flags) ──

const (
	CollectionStateOpen      = "OPEN"
	CollectionStateClosed    = "CLOSED"
	CollectionStateCollected = "COLLECTED"
)

// ── CHECK constrained in DB ──

const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// ── Configurable labels (no DB constraint) ──

const (
	ReportTypeDaily   = "daily"
	ReportTypePopular = "popular"
)
