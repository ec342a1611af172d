// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
	"fmt"

	"github.com/copperline/copperline/internal/activity"
	"github.com/copperline/copperline/internal/tenant"
)

const recentActivityLimit = 10

type InvoiceBucket struct {
	Count       int64 `json:"count"`
	AmountCents int64 `json:"amount_cents"`
}

type Summary struct {
	Clients        int64                    `json:"clients"`
	ActiveProjects int64                    `json:"active_projects"`
	Invoices       map[string]InvoiceBucket `json:"invoices"`
	OverdueCount   int64                    `json:"overdue_count"`
	RecentActivity []activity.Activity      `json:"recent_activity"`
}

type activityFeed interface {
	Recent(
		ctx context.Context,
		scope tenant.Scope,
		limit int,
	) ([]activity.Activity, error)
}

type Service struct {
	repo       *Repository
	activities activityFeed
}

func NewService(repo *Repository, activities activityFeed) *Service {
	return &Service{repo: repo, activities: activities}
}

// Summarize aggregates everything the scope can see. An elevated operator
// gets cross-tenant totals; an ordinary tenant sees only its own numbers.
func (s *Service) Summarize(
	ctx context.Context,
	scope tenant.Scope,
) (*Summary, error) {
	if scope.Empty() {
		return &Summary{
			Invoices:       map[string]InvoiceBucket{},
			RecentActivity: []activity.Activity{},
		}, nil
	}

	ids := scope.IDs()

	clients, err := s.repo.CountClients(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	projects, err := s.repo.CountActiveProjects(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	invoices, err := s.repo.InvoiceTotals(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	overdue, err := s.repo.CountOverdueInvoices(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	recent, err := s.activities.Recent(ctx, scope, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	return &Summary{
		Clients:        clients,
		ActiveProjects: projects,
		Invoices:       invoices,
		OverdueCount:   overdue,
		RecentActivity: recent,
	}, nil
}
