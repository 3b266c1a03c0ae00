package api

import (
	"context"
	"fmt"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// InvoiceService accesses invoices generated from completed service
// requests. Invoices are created server-side, so there is no Create here.
type InvoiceService struct {
	client httpclient.Interface
}

func (s *InvoiceService) List(ctx context.Context, page int) (Page[Invoice], error) {
	return getPage[Invoice](ctx, s.client, "invoices/", page)
}

func (s *InvoiceService) Get(ctx context.Context, id int64) (Invoice, error) {
	return getOne[Invoice](ctx, s.client, resourcePath("invoices/", id))
}

func (s *InvoiceService) Update(ctx context.Context, id int64, input InvoiceInput) (Invoice, error) {
	return patchJSON[InvoiceInput, Invoice](ctx, s.client, resourcePath("invoices/", id), input)
}

// DownloadPDF saves the rendered invoice to dest. An empty dest defaults to
// invoice-<id>.pdf in the working directory.
func (s *InvoiceService) DownloadPDF(ctx context.Context, id int64, dest string) error {
	if dest == "" {
		dest = fmt.Sprintf("invoice-%d.pdf", id)
	}
	return s.client.Download(ctx, resourcePath("invoices/", id)+"pdf/", dest)
}
