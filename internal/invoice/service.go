// AngelaMos | 2026
// service.go

package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/tenant"
)

type clientLookup interface {
	TenantOf(ctx context.Context, clientID string) (int64, error)
}

type activityRecorder interface {
	Record(ctx context.Context, tenantID int64, userID, action, detail string)
}

type Service struct {
	repo       *Repository
	clients    clientLookup
	activities activityRecorder
	now        func() time.Time
}

func NewService(
	repo *Repository,
	clients clientLookup,
	activities activityRecorder,
) *Service {
	return &Service{
		repo:       repo,
		clients:    clients,
		activities: activities,
		now:        time.Now,
	}
}

func (s *Service) Create(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	req CreateInvoiceRequest,
) (*InvoiceResponse, error) {
	tenantID, err := scope.Bind(req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	clientTenant, err := s.clients.TenantOf(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	if clientTenant != tenantID {
		return nil, fmt.Errorf("create invoice: client belongs to another tenant: %w", core.ErrInvalidInput)
	}

	number, err := s.repo.NextNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	i := &Invoice{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ClientID:    req.ClientID,
		ProjectID:   req.ProjectID,
		Number:      number,
		Status:      StatusDraft,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	s.record(ctx, i.TenantID, actorID, "invoice.created", i.Number)

	resp := NewInvoiceResponse(*i, s.now())
	return &resp, nil
}

func (s *Service) List(
	ctx context.Context,
	scope tenant.Scope,
	status string,
	page int,
	pageSize int,
) ([]InvoiceResponse, int, error) {
	if scope.Empty() {
		return []InvoiceResponse{}, 0, nil
	}

	offset := (page - 1) * pageSize
	invoices, total, err := s.repo.List(ctx, scope.IDs(), status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]InvoiceResponse, 0, len(invoices))
	for _, i := range invoices {
		responses = append(responses, NewInvoiceResponse(i, now))
	}

	return responses, total, nil
}

func (s *Service) Get(
	ctx context.Context,
	scope tenant.Scope,
	id string,
) (*InvoiceResponse, error) {
	i, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	resp := NewInvoiceResponse(*i, s.now())
	return &resp, nil
}

// Update edits a draft. Sent, paid and void invoices are immutable; the
// caller gets a transition error naming the current status.
func (s *Service) Update(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	id string,
	req UpdateInvoiceRequest,
) (*InvoiceResponse, error) {
	i, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if i.Status != StatusDraft {
		return nil, core.TransitionError(i.Status, StatusDraft)
	}

	i.AmountCents = req.AmountCents
	i.Currency = req.Currency
	i.DueDate = req.DueDate
	i.Notes = req.Notes

	if err := s.repo.UpdateDraft(ctx, i); err != nil {
		return nil, err
	}

	s.record(ctx, i.TenantID, actorID, "invoice.updated", i.Number)

	resp := NewInvoiceResponse(*i, s.now())
	return &resp, nil
}

func (s *Service) Send(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	id string,
) (*InvoiceResponse, error) {
	return s.transition(ctx, scope, actorID, id, StatusSent, "invoice.sent")
}

func (s *Service) MarkPaid(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	id string,
) (*InvoiceResponse, error) {
	return s.transition(ctx, scope, actorID, id, StatusPaid, "invoice.paid")
}

func (s *Service) Void(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	id string,
) (*InvoiceResponse, error) {
	return s.transition(ctx, scope, actorID, id, StatusVoid, "invoice.voided")
}

func (s *Service) transition(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	id string,
	to string,
	action string,
) (*InvoiceResponse, error) {
	i, err := s.getScoped(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(i.Status, to) {
		return nil, core.TransitionError(i.Status, to)
	}

	updated, err := s.repo.Transition(ctx, id, i.Status, to)
	if err != nil {
		return nil, err
	}

	s.record(ctx, updated.TenantID, actorID, action, updated.Number)

	resp := NewInvoiceResponse(*updated, s.now())
	return &resp, nil
}

func (s *Service) getScoped(
	ctx context.Context,
	scope tenant.Scope,
	id string,
) (*Invoice, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !scope.Contains(i.TenantID) {
		return nil, fmt.Errorf("get invoice: out of scope: %w", core.ErrNotFound)
	}

	return i, nil
}

func (s *Service) record(
	ctx context.Context,
	tenantID int64,
	actorID string,
	action string,
	detail string,
) {
	if s.activities != nil {
		s.activities.Record(ctx, tenantID, actorID, action, detail)
	}
}
