package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/quotehub/quotehub/internal/model"
)

type DashboardService struct {
	db DB
}

func NewDashboardService(database DB) *DashboardService {
	return &DashboardService{db: database}
}

// Get collects the company's activity counts. The four counts are
// independent, so they run concurrently against the pool.
func (s *DashboardService) Get(ctx context.Context, companyID string) (*model.Dashboard, error) {
	var d model.Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.count(gctx, &d.Customers,
			`SELECT count(*) FROM customers WHERE company_id = $1`, companyID)
	})
	g.Go(func() error {
		return s.count(gctx, &d.Items,
			`SELECT count(*) FROM items WHERE company_id = $1`, companyID)
	})
	g.Go(func() error {
		return s.count(gctx, &d.OpenRFQs,
			`SELECT count(*) FROM rfqs WHERE company_id = $1 AND status = $2`,
			companyID, model.RFQStatusOpen)
	})
	g.Go(func() error {
		return s.count(gctx, &d.OutstandingQuotes,
			`SELECT count(*) FROM quotes WHERE company_id = $1 AND status IN ($2, $3)`,
			companyID, model.QuoteStatusDraft, model.QuoteStatusSent)
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard for company %s: %w", companyID, err)
	}
	return &d, nil
}

func (s *DashboardService) count(ctx context.Context, dst *int, query string, args ...any) error {
	return s.db.QueryRow(ctx, query, args...).Scan(dst)
}
