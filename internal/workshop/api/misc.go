package api

import (
	"context"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// PromotionService accesses discount campaigns.
type PromotionService struct {
	client httpclient.Interface
}

// Active lists promotions currently in effect.
func (s *PromotionService) Active(ctx context.Context) ([]Promotion, error) {
	return getList[Promotion](ctx, s.client, "promotions/active/", nil)
}

// AuditService reads the change log.
type AuditService struct {
	client httpclient.Interface
}

func (s *AuditService) List(ctx context.Context, page int) (Page[AuditLog], error) {
	return getPage[AuditLog](ctx, s.client, "audit/", page)
}

// ProductUsageService records parts consumed by service requests. Listing is
// keyed by service request; item updates and deletes address the usage row.
type ProductUsageService struct {
	client httpclient.Interface
}

func (s *ProductUsageService) List(ctx context.Context, serviceRequestID int64) ([]ProductUsage, error) {
	return getList[ProductUsage](ctx, s.client, resourcePath("product-usage/", serviceRequestID), nil)
}

func (s *ProductUsageService) Create(ctx context.Context, input ProductUsageInput) (ProductUsage, error) {
	return postJSON[ProductUsageInput, ProductUsage](ctx, s.client, "product-usage/", input)
}

func (s *ProductUsageService) Update(ctx context.Context, id int64, input ProductUsageInput) (ProductUsage, error) {
	return patchJSON[ProductUsageInput, ProductUsage](ctx, s.client, resourcePath("product-usage-item/", id), input)
}

func (s *ProductUsageService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, resourcePath("product-usage-item/", id))
}
