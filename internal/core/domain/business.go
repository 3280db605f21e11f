package domain

// Business represents a fleet-owning business unit.
type Business struct {
	BusinessID  string `json:"businessID"` // Primary Key (UUID)
	Name        string `json:"name"`
	TaxID       string `json:"taxID"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// Vehicle represents a vehicle owned by a business.
type Vehicle struct {
	VehicleID  string `json:"vehicleID"`  // Primary Key (UUID)
	BusinessID string `json:"businessID"` // FK -> businesses.business_id
	Plate      string `json:"plate"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	ModelYear  int    `json:"modelYear"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// Driver represents a driver attached to a business's fleet.
type Driver struct {
	DriverID      string `json:"driverID"`   // Primary Key (UUID)
	BusinessID    string `json:"businessID"` // FK -> businesses.business_id
	Name          string `json:"name"`
	LicenseNumber string `json:"licenseNumber"`
	Phone         string `json:"phone"`
	IsActive      bool   `json:"isActive"`
	AuditFields
}
