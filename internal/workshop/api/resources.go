package api

import (
	"context"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// CustomerService accesses workshop customers.
type CustomerService struct {
	client httpclient.Interface
}

func (s *CustomerService) List(ctx context.Context, page int) (Page[Customer], error) {
	return getPage[Customer](ctx, s.client, "customers/", page)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (Customer, error) {
	return getOne[Customer](ctx, s.client, resourcePath("customers/", id))
}

func (s *CustomerService) Create(ctx context.Context, input CustomerInput) (Customer, error) {
	return postJSON[CustomerInput, Customer](ctx, s.client, "customers/", input)
}

func (s *CustomerService) Update(ctx context.Context, id int64, input CustomerInput) (Customer, error) {
	return patchJSON[CustomerInput, Customer](ctx, s.client, resourcePath("customers/", id), input)
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, resourcePath("customers/", id))
}

// Walkin returns the synthetic walk-in customer used for anonymous
// counter sales.
func (s *CustomerService) Walkin(ctx context.Context) (Customer, error) {
	return getOne[Customer](ctx, s.client, "customers/walkin/")
}

// VehicleService accesses customer vehicles.
type VehicleService struct {
	client httpclient.Interface
}

func (s *VehicleService) List(ctx context.Context, page int) (Page[Vehicle], error) {
	return getPage[Vehicle](ctx, s.client, "vehicle/", page)
}

func (s *VehicleService) Get(ctx context.Context, id int64) (Vehicle, error) {
	return getOne[Vehicle](ctx, s.client, resourcePath("vehicle/", id))
}

func (s *VehicleService) Create(ctx context.Context, input VehicleInput) (Vehicle, error) {
	return postJSON[VehicleInput, Vehicle](ctx, s.client, "vehicle/", input)
}

func (s *VehicleService) Update(ctx context.Context, id int64, input VehicleInput) (Vehicle, error) {
	return patchJSON[VehicleInput, Vehicle](ctx, s.client, resourcePath("vehicle/", id), input)
}

func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, resourcePath("vehicle/", id))
}

// MechanicService accesses workshop mechanics.
type MechanicService struct {
	client httpclient.Interface
}

func (s *MechanicService) List(ctx context.Context, page int) (Page[Mechanic], error) {
	return getPage[Mechanic](ctx, s.client, "mechanic/", page)
}

func (s *MechanicService) Get(ctx context.Context, id int64) (Mechanic, error) {
	return getOne[Mechanic](ctx, s.client, resourcePath("mechanic/", id))
}

func (s *MechanicService) Create(ctx context.Context, input MechanicInput) (Mechanic, error) {
	return postJSON[MechanicInput, Mechanic](ctx, s.client, "mechanic/", input)
}

func (s *MechanicService) Update(ctx context.Context, id int64, input MechanicInput) (Mechanic, error) {
	return patchJSON[MechanicInput, Mechanic](ctx, s.client, resourcePath("mechanic/", id), input)
}

func (s *MechanicService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, resourcePath("mechanic/", id))
}

// SiteService accesses workshop locations.
type SiteService struct {
	client httpclient.Interface
}

func (s *SiteService) List(ctx context.Context, page int) (Page[Site], error) {
	return getPage[Site](ctx, s.client, "sites/", page)
}

func (s *SiteService) Get(ctx context.Context, id int64) (Site, error) {
	return getOne[Site](ctx, s.client, resourcePath("sites/", id))
}

func (s *SiteService) Create(ctx context.Context, input SiteInput) (Site, error) {
	return postJSON[SiteInput, Site](ctx, s.client, "sites/", input)
}

func (s *SiteService) Update(ctx context.Context, id int64, input SiteInput) (Site, error) {
	return patchJSON[SiteInput, Site](ctx, s.client, resourcePath("sites/", id), input)
}

func (s *SiteService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, resourcePath("sites/", id))
}
