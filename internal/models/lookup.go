package models

// Category represents a row in the categories table.
type Category struct {
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// PaymentMethod represents a row in the payment_methods table.
type PaymentMethod struct {
	PaymentMethodID string `db:"payment_method_id"`
	Name            string `db:"name"`
	Description     string `db:"description"`
	IsActive        bool   `db:"is_active"`
	AuditFields
}

// TransactionState represents a row in the transaction_states table.
type TransactionState struct {
	StateID     string `db:"state_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
