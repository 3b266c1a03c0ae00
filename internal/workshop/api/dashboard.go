package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// DashboardService accesses headquarters and site-scoped metrics. The
// headquarters endpoints return 403 for site-scoped users; the caller maps
// that to a friendly message.
type DashboardService struct {
	client httpclient.Interface
}

// Get fetches the headquarters dashboard for the given period in days,
// optionally scoped to one site. Period 0 defaults to 30.
func (s *DashboardService) Get(ctx context.Context, period int, siteID *int64) (Dashboard, error) {
	if period <= 0 {
		period = 30
	}
	params := NewParams().SetInt("period", int64(period)).SetIntPtr("site_id", siteID)
	body, err := s.client.Do(ctx, httpclient.RequestOptions{
		Path:        "dashboard/",
		QueryParams: params.Map(),
	})
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Period: period, Metrics: body}, nil
}

// Activities fetches the recent-activity feed. Limit 0 defaults to 5.
func (s *DashboardService) Activities(ctx context.Context, limit int, siteID *int64) ([]Activity, error) {
	if limit <= 0 {
		limit = 5
	}
	params := NewParams().SetInt("limit", int64(limit)).SetIntPtr("site_id", siteID)
	return getList[Activity](ctx, s.client, "dashboard/activities/", params)
}

// Site fetches the site-scoped sales metrics for the caller's site.
func (s *DashboardService) Site(ctx context.Context) (SiteMetrics, error) {
	return getOne[SiteMetrics](ctx, s.client, "dashboard/site/")
}

// Reports fetches the reporting dashboard for the given period in days.
// The shape varies by deployment so the payload stays raw.
func (s *DashboardService) Reports(ctx context.Context, period int) (gjson.Result, error) {
	if period <= 0 {
		period = 30
	}
	body, err := s.client.Do(ctx, httpclient.RequestOptions{
		Path:        "dashboard/reports/",
		QueryParams: map[string]string{"period": strconv.Itoa(period)},
	})
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(body), nil
}

// ExportCSV saves a CSV export of the named resource to dest. An empty dest
// defaults to <resource>.csv in the working directory.
func (s *DashboardService) ExportCSV(ctx context.Context, resource, dest string) error {
	if dest == "" {
		dest = fmt.Sprintf("%s.csv", resource)
	}
	return s.client.Download(ctx, "dashboard/export/?resource="+resource, dest)
}
