package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/quotedesk/internal/audit"
	"github.com/MrJamesThe3rd/quotedesk/internal/events"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
	"github.com/MrJamesThe3rd/quotedesk/internal/product"
)

func TestService_Import(t *testing.T) {
	type testCase struct {
		name      string
		params    []product.CreateParams
		setupMock func(repo *product.MockRepository, log *product.MockAuditLog, n *product.MockNotifier)
		wantLen   int
		wantErr   bool
		errText   string
	}

	tests := []testCase{
		{
			name: "Success",
			params: []product.CreateParams{
				{Name: "Banner", Price: 8000},
				{Name: "Plate", Price: 15000},
			},
			setupMock: func(repo *product.MockRepository, log *product.MockAuditLog, n *product.MockNotifier) {
				repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil).Times(2)
				log.EXPECT().Record(gomock.Any(), gomock.Cond(func(e audit.Entry) bool {
					return e.EntityTitle == "2 products"
				}))
				n.EXPECT().Publish(events.ProductsChanged).Times(1)
			},
			wantLen: 2,
		},
		{
			name: "InvalidRowWritesNothing",
			params: []product.CreateParams{
				{Name: "Banner", Price: 8000},
				{Name: "", Price: 100},
			},
			wantErr: true,
			errText: "product 2 of 2",
		},
		{
			name:    "Empty",
			wantLen: 0,
		},
		{
			name: "PartialFailure",
			params: []product.CreateParams{
				{Name: "Banner", Price: 8000},
				{Name: "Plate", Price: 15000},
			},
			setupMock: func(repo *product.MockRepository, log *product.MockAuditLog, n *product.MockNotifier) {
				gomock.InOrder(
					repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil),
					repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(errors.New("db error")),
				)
				log.EXPECT().Record(gomock.Any(), gomock.Any())
				n.EXPECT().Publish(events.ProductsChanged)
			},
			wantLen: 1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := product.NewMockRepository(ctrl)
			log := product.NewMockAuditLog(ctrl)
			n := product.NewMockNotifier(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, log, n)
			}

			svc := product.NewService(repo, log, n)

			got, err := svc.Import(context.Background(), tt.params)
			if tt.wantErr {
				require.Error(t, err)

				if tt.errText != "" {
					assert.Contains(t, err.Error(), tt.errText)
				}
			} else {
				require.NoError(t, err)
			}

			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	log := product.NewMockAuditLog(ctrl)
	n := product.NewMockNotifier(ctrl)

	svc := product.NewService(repo, log, n)

	_, err := svc.Create(context.Background(), product.CreateParams{Name: "Banner", Price: -1})
	require.Error(t, err)

	repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil)
	log.EXPECT().Record(gomock.Any(), gomock.Cond(func(e audit.Entry) bool {
		return e.Detail == "price R$ 80,00"
	}))
	n.EXPECT().Publish(events.ProductsChanged)

	got, err := svc.Create(context.Background(), product.CreateParams{Name: " Banner ", Price: money.MustParse("R$ 80,00")})
	require.NoError(t, err)
	assert.Equal(t, "Banner", got.Name)
}

func TestService_FindByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	want := &product.Product{ID: uuid.New(), Name: "Bolo de Cenoura", Price: 4500}

	repo := product.NewMockRepository(ctrl)
	repo.EXPECT().ListProducts(gomock.Any()).Return([]*product.Product{want}, nil).Times(2)

	svc := product.NewService(repo, product.NewMockAuditLog(ctrl), product.NewMockNotifier(ctrl))

	got, err := svc.FindByName(context.Background(), "bolo de cenoura ")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.FindByName(context.Background(), "Torta")
	assert.ErrorIs(t, err, product.ErrNotFound)
}
