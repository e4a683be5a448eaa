package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType      = "Content-Type"
	HeaderAuthorization    = "Authorization"
	HeaderXRequestID       = "X-Request-ID"
	HeaderPaymentSignature = "X-Payment-Signature"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Roles
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	// Database table names
	TablePricingRecords   = "pricing_records"
	TableFreeUnlocks      = "free_unlocks"
	TablePurchases        = "purchases"
	TableSubscriptions    = "subscriptions"
	TablePaymentFailures  = "payment_failures"
	TableCheckoutSessions = "checkout_sessions"
	TableOutboxMessages   = "outbox_messages"
	TableBusinesses       = "businesses"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
