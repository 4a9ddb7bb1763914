package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
)

func TestService_Record(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *audit.MockRepository)
	}

	entry := audit.Entry{
		Action:      audit.ActionEdit,
		EntityKind:  audit.EntityBudget,
		EntityTitle: "Orçamento #1",
		Detail:      "status changed from Pending to Finalized",
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *audit.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *audit.Entry) error {
						assert.Equal(t, entry.Detail, e.Detail)
						e.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "RepoErrorIsSwallowed",
			setupMock: func(m *audit.MockRepository) {
				m.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := audit.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := audit.NewService(repo)

			assert.NotPanics(t, func() {
				svc.Record(context.Background(), entry)
			})
		})
	}
}

func TestService_Recent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := audit.NewMockRepository(ctrl)
	repo.EXPECT().
		ListEntries(gomock.Any(), 10).
		Return([]*audit.Entry{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	svc := audit.NewService(repo)

	got, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
