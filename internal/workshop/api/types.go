package api

import (
	"encoding/json"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/pkg/types"
)

// Customer is a workshop customer record.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Site      int64  `json:"site,omitempty"`
}

// CustomerInput is the payload for creating or updating a customer.
type CustomerInput struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Site      int64  `json:"site,omitempty"`
}

// Vehicle is a customer vehicle.
type Vehicle struct {
	ID           int64  `json:"id"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Year         int    `json:"year,omitempty"`
	LicensePlate string `json:"license_plate,omitempty"`
	VIN          string `json:"vin,omitempty"`
	Customer     int64  `json:"customer,omitempty"`
}

// VehicleInput is the payload for creating or updating a vehicle.
type VehicleInput struct {
	Make         string `json:"make,omitempty" validate:"omitempty,max=100"`
	Model        string `json:"model,omitempty" validate:"omitempty,max=100"`
	Year         int    `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	LicensePlate string `json:"license_plate,omitempty"`
	VIN          string `json:"vin,omitempty"`
	Customer     int64  `json:"customer,omitempty"`
}

// Mechanic is a workshop mechanic.
type Mechanic struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Site      int64  `json:"site,omitempty"`
	Active    bool   `json:"active,omitempty"`
}

// MechanicInput is the payload for creating or updating a mechanic.
type MechanicInput struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Phone     string `json:"phone,omitempty"`
	Site      int64  `json:"site,omitempty"`
	Active    *bool  `json:"active,omitempty"`
}

// Site is a workshop location.
type Site struct {
	ID      int64  `json:"id"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// SiteInput is the payload for creating or updating a site.
type SiteInput struct {
	Name    string `json:"name,omitempty" validate:"omitempty,max=200"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// ServiceCategory groups service types presented at intake.
type ServiceCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// ServiceRequest is a unit of workshop work, from intake to completion.
type ServiceRequest struct {
	ID                 int64           `json:"id"`
	Customer           int64           `json:"customer"`
	Vehicle            *int64          `json:"vehicle,omitempty"`
	Site               int64           `json:"site"`
	Mechanic           *int64          `json:"mechanic,omitempty"`
	Status             string          `json:"status,omitempty"`
	ServiceType        string          `json:"service_type,omitempty"`
	ServiceTypeDisplay string          `json:"service_type_display,omitempty"`
	Description        string          `json:"description,omitempty"`
	PartsOnly          bool            `json:"parts_only,omitempty"`
	CreatedAt          string          `json:"created_at,omitempty"`
	CompletedAt        string          `json:"completed_at,omitempty"`
	Extra              json.RawMessage `json:"-"`
}

// ServiceRequestInput is the payload for creating or updating a service
// request. Vehicle and Mechanic are nullable pointers so an update can
// distinguish "leave unchanged" (nil, omitted from the payload) from
// "detach" (explicit JSON null).
type ServiceRequestInput struct {
	Customer    int64              `json:"customer,omitempty"`
	Vehicle     *types.Null[int64] `json:"vehicle,omitempty"`
	Site        int64              `json:"site,omitempty"`
	Mechanic    *types.Null[int64] `json:"mechanic,omitempty"`
	ServiceType string             `json:"service_type,omitempty"`
	Description string             `json:"description,omitempty"`
	PartsOnly   *bool              `json:"parts_only,omitempty"`
	Status      string             `json:"status,omitempty"`
}

// ServiceRequestFilter narrows a service request listing.
type ServiceRequestFilter struct {
	CustomerID *int64
	VehicleID  *int64
	MechanicID *int64
	PartsOnly  bool
	Page       int
}

// CompleteInput is the optional payload for completing a service request.
type CompleteInput struct {
	Notes         string  `json:"notes,omitempty"`
	LaborCost     float64 `json:"labor_cost,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

// Product is a catalog entry.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name,omitempty"`
	FMSINumber  string  `json:"fmsi_number,omitempty"`
	ProductType string  `json:"product_type,omitempty"`
	Position    string  `json:"position,omitempty"`
	Application string  `json:"application,omitempty"`
	UnitPrice   float64 `json:"unit_price,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name        string  `json:"name,omitempty" validate:"omitempty,max=200"`
	FMSINumber  string  `json:"fmsi_number,omitempty"`
	ProductType string  `json:"product_type,omitempty"`
	Position    string  `json:"position,omitempty"`
	Application string  `json:"application,omitempty"`
	UnitPrice   float64 `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
}

// ProductSearchOptions tunes the product search endpoint.
type ProductSearchOptions struct {
	Limit   int    // default 15
	Vehicle string // optional vehicle description filter
	SiteID  string // optional site scope
}

// ImportReport summarizes a bulk product import.
type ImportReport struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// Appointment is a scheduled visit.
type Appointment struct {
	ID            int64  `json:"id"`
	DisplayNumber string `json:"display_number,omitempty"`
	Customer      int64  `json:"customer,omitempty"`
	Vehicle       int64  `json:"vehicle,omitempty"`
	Site          int64  `json:"site,omitempty"`
	Mechanic      int64  `json:"mechanic,omitempty"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
	ScheduledTime string `json:"scheduled_time,omitempty"`
	Status        string `json:"status,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// AppointmentInput is the payload for creating or updating an appointment.
type AppointmentInput struct {
	Customer      int64              `json:"customer,omitempty"`
	Vehicle       *types.Null[int64] `json:"vehicle,omitempty"`
	Site          int64              `json:"site,omitempty"`
	Mechanic      *types.Null[int64] `json:"mechanic,omitempty"`
	ScheduledDate string             `json:"scheduled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime string             `json:"scheduled_time,omitempty"`
	Status        string             `json:"status,omitempty"`
	Notes         string             `json:"notes,omitempty"`
}

// AvailabilitySlot is a bookable time slot for a mechanic on a date.
type AvailabilitySlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// InventoryItem tracks stock of a product at a site.
type InventoryItem struct {
	ID               int64  `json:"id"`
	Product          int64  `json:"product"`
	Site             int64  `json:"site"`
	QuantityOnHand   int    `json:"quantity_on_hand,omitempty"`
	QuantityReserved int    `json:"quantity_reserved,omitempty"`
	ReorderLevel     int    `json:"reorder_level,omitempty"`
	BinLocation      string `json:"bin_location,omitempty"`
}

// InventoryInput is the payload for creating or updating an inventory item.
type InventoryInput struct {
	Product        int64  `json:"product,omitempty"`
	Site           int64  `json:"site,omitempty"`
	QuantityOnHand *int   `json:"quantity_on_hand,omitempty" validate:"omitempty,gte=0"`
	ReorderLevel   *int   `json:"reorder_level,omitempty" validate:"omitempty,gte=0"`
	BinLocation    string `json:"bin_location,omitempty"`
}

// StockAlert flags inventory at or below its reorder level.
type StockAlert struct {
	ID             int64  `json:"id"`
	ProductName    string `json:"product_name"`
	SiteName       string `json:"site_name"`
	QuantityOnHand int    `json:"quantity_on_hand"`
	ReorderLevel   int    `json:"reorder_level"`
}

// Invoice is generated when a service request completes.
type Invoice struct {
	ID             int64   `json:"id"`
	ServiceRequest int64   `json:"service_request"`
	TotalCost      float64 `json:"total_cost,omitempty"`
	Paid           bool    `json:"paid,omitempty"`
	PaymentMethod  string  `json:"payment_method,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

// InvoiceInput is the payload for updating an invoice.
type InvoiceInput struct {
	Paid          *bool  `json:"paid,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// Promotion is a discount campaign shown at point of sale.
type Promotion struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Discount    float64 `json:"discount,omitempty"`
	StartsAt    string  `json:"starts_at,omitempty"`
	EndsAt      string  `json:"ends_at,omitempty"`
}

// AuditLog records a change to a tracked model.
type AuditLog struct {
	ID         int64           `json:"id"`
	CreatedAt  string          `json:"created_at,omitempty"`
	Action     string          `json:"action,omitempty"`
	ModelLabel string          `json:"model_label,omitempty"`
	ObjectRepr string          `json:"object_repr,omitempty"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	User       string          `json:"user,omitempty"`
}

// ProductUsage records parts consumed by a service request.
type ProductUsage struct {
	ID             int64   `json:"id"`
	ServiceRequest int64   `json:"service_request,omitempty"`
	Product        int64   `json:"product,omitempty"`
	ProductName    string  `json:"product_name,omitempty"`
	Quantity       int     `json:"quantity,omitempty"`
	UnitPrice      float64 `json:"unit_price,omitempty"`
}

// ProductUsageInput is the payload for recording or adjusting product usage.
type ProductUsageInput struct {
	ServiceRequest int64   `json:"service_request,omitempty"`
	Product        int64   `json:"product,omitempty"`
	Quantity       int     `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	UnitPrice      float64 `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
}

// SearchResultItem is one hit from the global search endpoint.
type SearchResultItem struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	URL      string `json:"url,omitempty"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}

// SearchResponse groups global search hits by resource.
type SearchResponse struct {
	ServiceRequests []SearchResultItem `json:"service_requests,omitempty"`
	Customers       []SearchResultItem `json:"customers,omitempty"`
	Vehicles        []SearchResultItem `json:"vehicles,omitempty"`
}

// Dashboard carries headquarters metrics. The shape varies with the period
// and the caller's scope, so the bulk stays raw for rendering.
type Dashboard struct {
	Period  int             `json:"period,omitempty"`
	Metrics json.RawMessage `json:"-"`
}

// Activity is one row in the recent-activity feed.
type Activity struct {
	ID          int64  `json:"id"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	User        string `json:"user,omitempty"`
}

// SiteMetrics carries the site-scoped sales dashboard.
type SiteMetrics struct {
	RevenueToday float64 `json:"revenue_today,omitempty"`
	RevenueWeek  float64 `json:"revenue_week,omitempty"`
	SalesToday   int     `json:"sales_today,omitempty"`
	SalesWeek    int     `json:"sales_week,omitempty"`
}
