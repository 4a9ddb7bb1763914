package agenda_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/quotedesk/internal/agenda"
	"github.com/MrJamesThe3rd/quotedesk/internal/budget"
)

type stubLister struct {
	budgets []*budget.Budget
	filter  budget.ListFilter
}

func (s *stubLister) List(_ context.Context, filter budget.ListFilter) ([]*budget.Budget, error) {
	s.filter = filter
	return s.budgets, nil
}

func day(d int) *time.Time {
	return new(time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC))
}

func TestService_Deliveries(t *testing.T) {
	lister := &stubLister{budgets: []*budget.Budget{
		{Title: "later", DeliveryDate: day(20)},
		{Title: "none"},
		{Title: "today", DeliveryDate: day(15)},
		{Title: "late", DeliveryDate: day(2)},
	}}

	now := time.Date(2024, 3, 15, 18, 45, 0, 0, time.UTC)
	svc := agenda.NewService(lister).WithClock(func() time.Time { return now })

	got, err := svc.Deliveries(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "late", got[0].Budget.Title)
	assert.Equal(t, agenda.StateOverdue, got[0].State)
	assert.Equal(t, -13, got[0].DaysUntil(now))

	assert.Equal(t, agenda.StateToday, got[1].State)
	assert.Equal(t, 0, got[1].DaysUntil(now))

	assert.Equal(t, agenda.StateScheduled, got[2].State)
	assert.Equal(t, 5, got[2].DaysUntil(now))

	require.NotNil(t, lister.filter.Status)
	assert.Equal(t, budget.StatusPending, *lister.filter.Status)

	_, err = svc.Deliveries(context.Background(), true)
	require.NoError(t, err)
	assert.Nil(t, lister.filter.Status)
}
