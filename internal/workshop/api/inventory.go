package api

import (
	"context"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// InventoryService accesses per-site stock records.
type InventoryService struct {
	client httpclient.Interface
}

func (s *InventoryService) List(ctx context.Context, page int) (Page[InventoryItem], error) {
	return getPage[InventoryItem](ctx, s.client, "inventory/", page)
}

func (s *InventoryService) Get(ctx context.Context, id int64) (InventoryItem, error) {
	return getOne[InventoryItem](ctx, s.client, resourcePath("inventory/", id))
}

func (s *InventoryService) Create(ctx context.Context, input InventoryInput) (InventoryItem, error) {
	return postJSON[InventoryInput, InventoryItem](ctx, s.client, "inventory/", input)
}

func (s *InventoryService) Update(ctx context.Context, id int64, input InventoryInput) (InventoryItem, error) {
	return patchJSON[InventoryInput, InventoryItem](ctx, s.client, resourcePath("inventory/", id), input)
}

func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, resourcePath("inventory/", id))
}

// LowStock lists inventory at or below its reorder level across sites the
// caller can see.
func (s *InventoryService) LowStock(ctx context.Context) ([]StockAlert, error) {
	return getList[StockAlert](ctx, s.client, "inventory/low-stock/", nil)
}
