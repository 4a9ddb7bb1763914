package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/client"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/validation"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    client.CreateParams
		setupMock func(repo *client.MockRepository, log *client.MockAuditLog, n *client.MockNotifier)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: client.CreateParams{Name: "  Ana Souza ", Phone: "(11) 99999-0000"},
			setupMock: func(repo *client.MockRepository, log *client.MockAuditLog, n *client.MockNotifier) {
				repo.EXPECT().
					CreateClient(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *client.Client) error {
						assert.Equal(t, "Ana Souza", c.Name)
						c.ID = uuid.New()
						return nil
					})
				log.EXPECT().Record(gomock.Any(), gomock.Cond(func(e audit.Entry) bool {
					return e.Action == audit.ActionCreate && e.EntityKind == audit.EntityClient && e.EntityTitle == "Ana Souza"
				}))
				n.EXPECT().Publish(events.ClientsChanged)
			},
		},
		{
			name:    "MissingName",
			params:  client.CreateParams{Phone: "123"},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: client.CreateParams{Name: "Ana"},
			setupMock: func(repo *client.MockRepository, _ *client.MockAuditLog, _ *client.MockNotifier) {
				repo.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := client.NewMockRepository(ctrl)
			log := client.NewMockAuditLog(ctrl)
			n := client.NewMockNotifier(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, log, n)
			}

			svc := client.NewService(repo, log, n)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := client.NewMockRepository(ctrl)
	log := client.NewMockAuditLog(ctrl)
	n := client.NewMockNotifier(ctrl)

	repo.EXPECT().GetClient(gomock.Any(), id).Return(&client.Client{ID: id, Name: "Ana", Phone: "1"}, nil)
	repo.EXPECT().UpdateClient(gomock.Any(), gomock.Any()).Return(nil)
	log.EXPECT().Record(gomock.Any(), gomock.Any())
	n.EXPECT().Publish(events.ClientsChanged)

	svc := client.NewService(repo, log, n)

	got, err := svc.Update(context.Background(), id, client.UpdateParams{Address: new("Rua das Flores, 10")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "1", got.Phone)
	assert.Equal(t, "Rua das Flores, 10", got.Address)

	_, err = svc.Update(context.Background(), id, client.UpdateParams{Name: new("")})
	_, ok := validation.As(err)
	assert.True(t, ok)
}

func TestService_Names(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().ListClients(gomock.Any()).Return([]*client.Client{
		{Name: "bruno"},
		{Name: "Álvaro"},
		{Name: "Carla"},
		{Name: "Ana"},
	}, nil)

	svc := client.NewService(repo, client.NewMockAuditLog(ctrl), client.NewMockNotifier(ctrl))

	got, err := svc.Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Álvaro", "Ana", "bruno", "Carla"}, got)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := client.NewMockRepository(ctrl)
	log := client.NewMockAuditLog(ctrl)
	n := client.NewMockNotifier(ctrl)

	repo.EXPECT().GetClient(gomock.Any(), id).Return(nil, client.ErrNotFound)

	svc := client.NewService(repo, log, n)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, client.ErrNotFound)
}
