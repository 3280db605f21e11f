package dto

// CreateBusinessRequest carries the fields for creating a business.
type CreateBusinessRequest struct {
	Name        string `json:"name" binding:"required"`
	TaxID       string `json:"taxID"`
	Description string `json:"description"`
}

// UpdateBusinessRequest carries the updatable fields of a business.
type UpdateBusinessRequest struct {
	Name        *string `json:"name"`
	TaxID       *string `json:"taxID"`
	Description *string `json:"description"`
}

// CreateVehicleRequest carries the fields for creating a vehicle.
type CreateVehicleRequest struct {
	BusinessID string `json:"businessID" binding:"required,uuid"`
	Plate      string `json:"plate" binding:"required"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	ModelYear  int    `json:"modelYear" binding:"omitempty,gte=1950"`
}

// UpdateVehicleRequest carries the updatable fields of a vehicle.
type UpdateVehicleRequest struct {
	Plate     *string `json:"plate"`
	Make      *string `json:"make"`
	Model     *string `json:"model"`
	ModelYear *int    `json:"modelYear" binding:"omitempty,gte=1950"`
}

// CreateDriverRequest carries the fields for creating a driver.
type CreateDriverRequest struct {
	BusinessID    string `json:"businessID" binding:"required,uuid"`
	Name          string `json:"name" binding:"required"`
	LicenseNumber string `json:"licenseNumber"`
	Phone         string `json:"phone"`
}
