package api

import (
	"context"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// AppointmentService accesses scheduled visits.
type AppointmentService struct {
	client httpclient.Interface
}

func (s *AppointmentService) List(ctx context.Context, page int) (Page[Appointment], error) {
	return getPage[Appointment](ctx, s.client, "appointments/", page)
}

func (s *AppointmentService) Get(ctx context.Context, id int64) (Appointment, error) {
	return getOne[Appointment](ctx, s.client, resourcePath("appointments/", id))
}

func (s *AppointmentService) Create(ctx context.Context, input AppointmentInput) (Appointment, error) {
	return postJSON[AppointmentInput, Appointment](ctx, s.client, "appointments/", input)
}

func (s *AppointmentService) Update(ctx context.Context, id int64, input AppointmentInput) (Appointment, error) {
	return patchJSON[AppointmentInput, Appointment](ctx, s.client, resourcePath("appointments/", id), input)
}

func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, resourcePath("appointments/", id))
}

// Availability returns the bookable slots for a mechanic at a site on the
// given date (YYYY-MM-DD).
func (s *AppointmentService) Availability(ctx context.Context, mechanicID int64, date string, siteID int64) ([]AvailabilitySlot, error) {
	params := NewParams().
		SetInt("mechanic_id", mechanicID).
		Set("date", date).
		SetInt("site_id", siteID)
	return getList[AvailabilitySlot](ctx, s.client, "appointments/availability/", params)
}
