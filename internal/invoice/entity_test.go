// AngelaMos | 2026
// entity_test.go

package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]string]bool{
		{StatusDraft, StatusSent}: true,
		{StatusDraft, StatusVoid}: true,
		{StatusSent, StatusPaid}:  true,
		{StatusSent, StatusVoid}:  true,
	}

	statuses := []string{StatusDraft, StatusSent, StatusPaid, StatusVoid}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, CanTransition(from, to),
				"%s -> %s", from, to)
		}
	}
}

func TestOverdueDerivation(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	cases := []struct {
		name string
		inv  Invoice
		want bool
	}{
		{"sent and past due", Invoice{Status: StatusSent, DueDate: &past}, true},
		{"sent and not yet due", Invoice{Status: StatusSent, DueDate: &future}, false},
		{"sent with no due date", Invoice{Status: StatusSent}, false},
		{"draft past due", Invoice{Status: StatusDraft, DueDate: &past}, false},
		{"paid past due", Invoice{Status: StatusPaid, DueDate: &past}, false},
		{"void past due", Invoice{Status: StatusVoid, DueDate: &past}, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.inv.Overdue(now), tc.name)
	}
}

func TestInvoiceResponseCarriesOverdue(t *testing.T) {
	now := time.Now()
	due := now.Add(-time.Hour)

	resp := NewInvoiceResponse(Invoice{Status: StatusSent, DueDate: &due}, now)
	assert.True(t, resp.Overdue)

	resp = NewInvoiceResponse(Invoice{Status: StatusDraft, DueDate: &due}, now)
	assert.False(t, resp.Overdue)
}
