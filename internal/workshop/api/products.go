package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// ProductService accesses the product catalog.
type ProductService struct {
	client httpclient.Interface
}

func (s *ProductService) List(ctx context.Context, page int) (Page[Product], error) {
	return getPage[Product](ctx, s.client, "products/", page)
}

func (s *ProductService) Get(ctx context.Context, id int64) (Product, error) {
	return getOne[Product](ctx, s.client, resourcePath("products/", id))
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (Product, error) {
	return postJSON[ProductInput, Product](ctx, s.client, "products/", input)
}

func (s *ProductService) Update(ctx context.Context, id int64, input ProductInput) (Product, error) {
	return patchJSON[ProductInput, Product](ctx, s.client, resourcePath("products/", id), input)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return del(ctx, s.client, resourcePath("products/", id))
}

// Search looks up catalog products by name or FMSI number, optionally
// narrowed to a vehicle description or a site.
func (s *ProductService) Search(ctx context.Context, q string, opts *ProductSearchOptions) ([]Product, error) {
	limit := 15
	params := NewParams()
	if opts != nil {
		if opts.Limit > 0 {
			limit = opts.Limit
		}
		params.Set("vehicle", opts.Vehicle).Set("site_id", opts.SiteID)
	}
	params.values["q"] = q
	params.values["limit"] = strconv.Itoa(limit)
	return getList[Product](ctx, s.client, "products/search/", params)
}

// ImportExcel uploads a product spreadsheet for bulk create/update. The
// payload goes up as a multipart form with a single "file" part.
func (s *ProductService) ImportExcel(ctx context.Context, filename string, content io.Reader) (ImportReport, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return ImportReport{}, fmt.Errorf("failed to build upload: %v", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return ImportReport{}, fmt.Errorf("failed to read %s: %v", filename, err)
	}
	if err := mw.Close(); err != nil {
		return ImportReport{}, fmt.Errorf("failed to build upload: %v", err)
	}

	body, err := s.client.Do(ctx, httpclient.RequestOptions{
		Method:      http.MethodPost,
		Path:        "products/import-excel/",
		Body:        buf.Bytes(),
		ContentType: mw.FormDataContentType(),
	})
	if err != nil {
		return ImportReport{}, err
	}
	return decodeOne[ImportReport](body)
}
