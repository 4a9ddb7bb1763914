package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/expense"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

func TestService_Create(t *testing.T) {
	date := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    expense.CreateParams
		setupMock func(repo *expense.MockRepository, log *expense.MockAuditLog, n *expense.MockNotifier)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: expense.CreateParams{Title: "Farinha", Amount: 4300, Date: &date},
			setupMock: func(repo *expense.MockRepository, log *expense.MockAuditLog, n *expense.MockNotifier) {
				repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)
				log.EXPECT().Record(gomock.Any(), gomock.Cond(func(e audit.Entry) bool {
					return e.EntityKind == audit.EntityExpense && e.Detail == "R$ 43,00 on 02/03/2024"
				}))
				n.EXPECT().Publish(events.ExpensesChanged)
			},
		},
		{
			name:   "SignedAmount",
			params: expense.CreateParams{Title: "Material de impressão", Amount: money.MustParse("- R$ 250,00"), Date: &date},
			setupMock: func(repo *expense.MockRepository, log *expense.MockAuditLog, n *expense.MockNotifier) {
				repo.EXPECT().CreateExpense(gomock.Any(), gomock.Cond(func(e *expense.Expense) bool {
					return e.Amount == 25000
				})).Return(nil)
				log.EXPECT().Record(gomock.Any(), gomock.Any())
				n.EXPECT().Publish(events.ExpensesChanged)
			},
		},
		{
			name:    "MissingTitle",
			params:  expense.CreateParams{Amount: 100},
			wantErr: true,
		},
		{
			name:    "ZeroAmount",
			params:  expense.CreateParams{Title: "Gás"},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: expense.CreateParams{Title: "Gás", Amount: 12000},
			setupMock: func(repo *expense.MockRepository, _ *expense.MockAuditLog, _ *expense.MockNotifier) {
				repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			log := expense.NewMockAuditLog(ctrl)
			n := expense.NewMockNotifier(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, log, n)
			}

			svc := expense.NewService(repo, log, n)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, date, got.Date)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := expense.NewMockRepository(ctrl)
	log := expense.NewMockAuditLog(ctrl)
	n := expense.NewMockNotifier(ctrl)

	repo.EXPECT().GetExpense(gomock.Any(), id).Return(&expense.Expense{ID: id, Title: "Gás", Amount: 12000}, nil)
	repo.EXPECT().DeleteExpense(gomock.Any(), id).Return(nil)
	log.EXPECT().Record(gomock.Any(), gomock.Cond(func(e audit.Entry) bool { return e.Action == audit.ActionDelete }))
	n.EXPECT().Publish(events.ExpensesChanged)

	svc := expense.NewService(repo, log, n)
	require.NoError(t, svc.Delete(context.Background(), id))
}

func TestService_Update(t *testing.T) {
	id := uuid.New()
	moved := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    expense.UpdateParams
		setupMock func(repo *expense.MockRepository, log *expense.MockAuditLog, n *expense.MockNotifier)
		want      *expense.Expense
		wantField string
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "ChangesOnlyGivenFields",
			params: expense.UpdateParams{Amount: new(money.MustParse("- R$ 180,00")), Date: &moved},
			setupMock: func(repo *expense.MockRepository, log *expense.MockAuditLog, n *expense.MockNotifier) {
				repo.EXPECT().GetExpense(gomock.Any(), id).
					Return(&expense.Expense{ID: id, Title: "Energia elétrica", Amount: 12000, Date: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)}, nil)
				repo.EXPECT().UpdateExpense(gomock.Any(), gomock.Any()).Return(nil)
				log.EXPECT().Record(gomock.Any(), gomock.Cond(func(e audit.Entry) bool {
					return e.Action == audit.ActionEdit && e.Detail == "R$ 180,00 on 09/03/2024"
				}))
				n.EXPECT().Publish(events.ExpensesChanged)
			},
			want: &expense.Expense{ID: id, Title: "Energia elétrica", Amount: 18000, Date: moved},
		},
		{
			name:      "BlankTitle",
			params:    expense.UpdateParams{Title: new("  ")},
			wantField: "title",
		},
		{
			name:      "ZeroAmount",
			params:    expense.UpdateParams{Amount: new(money.Amount(0))},
			wantField: "amount",
		},
		{
			name:   "NotFound",
			params: expense.UpdateParams{Title: new("Gás")},
			setupMock: func(repo *expense.MockRepository, _ *expense.MockAuditLog, _ *expense.MockNotifier) {
				repo.EXPECT().GetExpense(gomock.Any(), id).Return(nil, expense.ErrNotFound)
			},
			wantErr: expense.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			log := expense.NewMockAuditLog(ctrl)
			n := expense.NewMockNotifier(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, log, n)
			}

			got, err := expense.NewService(repo, log, n).Update(context.Background(), id, tt.params)

			switch {
			case tt.wantField != "":
				verr, ok := validation.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantField, verr.Field)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
