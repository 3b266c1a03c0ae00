package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

const serviceRequestBase = "service_request/"

// ServiceRequestService accesses service requests, the central unit of
// workshop work.
type ServiceRequestService struct {
	client httpclient.Interface
}

// List returns service requests narrowed by the given filter. A nil filter
// lists everything.
func (s *ServiceRequestService) List(ctx context.Context, filter *ServiceRequestFilter) (Page[ServiceRequest], error) {
	params := NewParams()
	if filter != nil {
		params.SetIntPtr("customer_id", filter.CustomerID).
			SetIntPtr("vehicle_id", filter.VehicleID).
			SetIntPtr("mechanic_id", filter.MechanicID).
			SetBool("parts_only", filter.PartsOnly).
			SetPage(filter.Page)
	}
	body, err := s.client.Do(ctx, httpclient.RequestOptions{
		Path:        serviceRequestBase,
		QueryParams: params.Map(),
	})
	if err != nil {
		return Page[ServiceRequest]{}, err
	}
	return decodePage[ServiceRequest](body)
}

func (s *ServiceRequestService) Get(ctx context.Context, id int64) (ServiceRequest, error) {
	return getOne[ServiceRequest](ctx, s.client, resourcePath(serviceRequestBase, id))
}

func (s *ServiceRequestService) Create(ctx context.Context, input ServiceRequestInput) (ServiceRequest, error) {
	return postJSON[ServiceRequestInput, ServiceRequest](ctx, s.client, serviceRequestBase, input)
}

func (s *ServiceRequestService) Update(ctx context.Context, id int64, input ServiceRequestInput) (ServiceRequest, error) {
	return patchJSON[ServiceRequestInput, ServiceRequest](ctx, s.client, resourcePath(serviceRequestBase, id), input)
}

func (s *ServiceRequestService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, resourcePath(serviceRequestBase, id))
}

// Complete marks a service request finished, optionally recording final
// costs and payment. A nil input sends no body.
func (s *ServiceRequestService) Complete(ctx context.Context, id int64, input *CompleteInput) (ServiceRequest, error) {
	opts := httpclient.RequestOptions{
		Method: http.MethodPost,
		Path:   resourcePath(serviceRequestBase, id) + "complete/",
	}
	if input != nil {
		if err := validate.Struct(*input); err != nil {
			return ServiceRequest{}, err
		}
		body, err := json.Marshal(input)
		if err != nil {
			return ServiceRequest{}, err
		}
		opts.Body = body
	}
	resp, err := s.client.Do(ctx, opts)
	if err != nil {
		return ServiceRequest{}, err
	}
	return decodeOne[ServiceRequest](resp)
}
