package models

// Business represents a row in the businesses table.
type Business struct {
	BusinessID  string `db:"business_id"`
	Name        string `db:"name"`
	TaxID       string `db:"tax_id"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// Vehicle represents a row in the vehicles table.
type Vehicle struct {
	VehicleID  string `db:"vehicle_id"`
	BusinessID string `db:"business_id"`
	Plate      string `db:"plate"`
	Make       string `db:"make"`
	Model      string `db:"model"`
	ModelYear  int    `db:"model_year"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// Driver represents a row in the drivers table.
type Driver struct {
	DriverID      string `db:"driver_id"`
	BusinessID    string `db:"business_id"`
	Name          string `db:"name"`
	LicenseNumber string `db:"license_number"`
	Phone         string `db:"phone"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}
