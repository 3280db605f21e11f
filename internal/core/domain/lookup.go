package domain

// Category is a lookup entry classifying financial transactions.
type Category struct {
	CategoryID  string `json:"categoryID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// PaymentMethod is a lookup entry for how money moved (cash, transfer, ...).
type PaymentMethod struct {
	PaymentMethodID string `json:"paymentMethodID"` // Primary Key (UUID)
	Name            string `json:"name"`
	Description     string `json:"description"`
	IsActive        bool   `json:"isActive"`
	AuditFields
}

// TransactionState is a lookup entry for the lifecycle state of a transaction.
type TransactionState struct {
	StateID     string `json:"stateID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
