// Package api exposes typed access to the workshop REST resources on top of
// the shared HTTP client. Each resource gets a small service with the verbs
// the server supports; normalization of list and paginated envelopes happens
// in the httpclient package so everything here decodes into concrete types.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/apperrors"
	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// ErrInvalidResponse wraps JSON decode failures on 2xx responses. Callers can
// match it with errors.Is to tell a malformed payload from a transport or
// API error.
var ErrInvalidResponse = apperrors.New("failed to parse server response")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Service bundles the per-resource services over one client.
type Service struct {
	client httpclient.Interface

	Customers       *CustomerService
	Vehicles        *VehicleService
	Mechanics       *MechanicService
	Sites           *SiteService
	ServiceRequests *ServiceRequestService
	Products        *ProductService
	Appointments    *AppointmentService
	Inventory       *InventoryService
	Invoices        *InvoiceService
	Promotions      *PromotionService
	Audit           *AuditService
	Usage           *ProductUsageService
	Dashboard       *DashboardService
}

// NewService creates the typed resource surface over the given client.
func NewService(client httpclient.Interface) *Service {
	s := &Service{client: client}
	s.Customers = &CustomerService{client: client}
	s.Vehicles = &VehicleService{client: client}
	s.Mechanics = &MechanicService{client: client}
	s.Sites = &SiteService{client: client}
	s.ServiceRequests = &ServiceRequestService{client: client}
	s.Products = &ProductService{client: client}
	s.Appointments = &AppointmentService{client: client}
	s.Inventory = &InventoryService{client: client}
	s.Invoices = &InvoiceService{client: client}
	s.Promotions = &PromotionService{client: client}
	s.Audit = &AuditService{client: client}
	s.Usage = &ProductUsageService{client: client}
	s.Dashboard = &DashboardService{client: client}
	return s
}

// Me fetches the current user's identity and capabilities as a raw map;
// the session manager interprets it.
func (s *Service) Me(ctx context.Context) (map[string]any, error) {
	body, err := s.client.Do(ctx, httpclient.RequestOptions{Path: "me/"})
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ErrInvalidResponse.Err(err)
	}
	return payload, nil
}

// Search queries service requests, customers, and vehicles in one call.
func (s *Service) Search(ctx context.Context, q string, limit int) (SearchResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	body, err := s.client.Do(ctx, httpclient.RequestOptions{
		Path: "search/",
		QueryParams: map[string]string{
			"q":     q,
			"limit": strconv.Itoa(limit),
		},
	})
	if err != nil {
		return SearchResponse{}, err
	}
	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return SearchResponse{}, ErrInvalidResponse.Err(err)
	}
	return resp, nil
}

// ServiceCategories lists the intake service categories.
func (s *Service) ServiceCategories(ctx context.Context) ([]ServiceCategory, error) {
	return getList[ServiceCategory](ctx, s.client, "service-categories/", nil)
}

// Page is one page of a resource listing plus the server's total count.
type Page[T any] struct {
	Results []T
	Count   int
}

func decodeOne[T any](body []byte) (T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return out, ErrInvalidResponse.Err(err)
	}
	return out, nil
}

func decodeList[T any](body []byte) ([]T, error) {
	items := httpclient.ToList(body)
	out := make([]T, 0, len(items))
	for _, raw := range items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, ErrInvalidResponse.Err(err)
		}
		out = append(out, item)
	}
	return out, nil
}

func decodePage[T any](body []byte) (Page[T], error) {
	pg := httpclient.ToPaginated(body)
	out := Page[T]{Results: make([]T, 0, len(pg.Results)), Count: pg.Count}
	for _, raw := range pg.Results {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return Page[T]{}, ErrInvalidResponse.Err(err)
		}
		out.Results = append(out.Results, item)
	}
	return out, nil
}

func getList[T any](ctx context.Context, client httpclient.Interface, path string, params *Params) ([]T, error) {
	body, err := client.Do(ctx, httpclient.RequestOptions{Path: path, QueryParams: params.Map()})
	if err != nil {
		return nil, err
	}
	return decodeList[T](body)
}

func getPage[T any](ctx context.Context, client httpclient.Interface, path string, page int) (Page[T], error) {
	body, err := client.Do(ctx, httpclient.RequestOptions{
		Path:        path,
		QueryParams: NewParams().SetPage(page).Map(),
	})
	if err != nil {
		return Page[T]{}, err
	}
	return decodePage[T](body)
}

func getOne[T any](ctx context.Context, client httpclient.Interface, path string) (T, error) {
	var zero T
	body, err := client.Do(ctx, httpclient.RequestOptions{Path: path})
	if err != nil {
		return zero, err
	}
	return decodeOne[T](body)
}

func postJSON[In any, Out any](ctx context.Context, client httpclient.Interface, path string, input In) (Out, error) {
	return writeJSON[In, Out](ctx, client, http.MethodPost, path, input)
}

func patchJSON[In any, Out any](ctx context.Context, client httpclient.Interface, path string, input In) (Out, error) {
	return writeJSON[In, Out](ctx, client, http.MethodPatch, path, input)
}

func writeJSON[In any, Out any](ctx context.Context, client httpclient.Interface, method, path string, input In) (Out, error) {
	var zero Out
	if err := validate.Struct(input); err != nil {
		return zero, err
	}
	body, err := json.Marshal(input)
	if err != nil {
		return zero, err
	}
	resp, err := client.Do(ctx, httpclient.RequestOptions{
		Method: method,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return zero, err
	}
	return decodeOne[Out](resp)
}

func del(ctx context.Context, client httpclient.Interface, path string) error {
	_, err := client.Do(ctx, httpclient.RequestOptions{
		Method: http.MethodDelete,
		Path:   path,
	})
	return err
}

func resourcePath(base string, id int64) string {
	return fmt.Sprintf("%s%d/", base, id)
}
