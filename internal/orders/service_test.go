package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/velvetcrumb/velvetcrumb-backend/internal/catalog"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/wizard"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/pagination"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

type stubRepo struct {
	orders  map[uuid.UUID]*models.Order
	created []*models.Order
	listAll []models.Order
	listErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (r *stubRepo) WithTx(*gorm.DB) Repository { return r }

func (r *stubRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	r.orders[order.ID] = order
	r.created = append(r.created, order)
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *stubRepo) List(_ context.Context, filter ListFilter) ([]models.Order, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	rows := r.listAll
	if filter.Status != nil {
		filtered := make([]models.Order, 0, len(rows))
		for _, row := range rows {
			if row.Status == *filter.Status {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}
	return rows, nil
}

func (r *stubRepo) ListAll(context.Context) ([]models.Order, error) {
	return r.listAll, r.listErr
}

func (r *stubRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.orders, id)
	return nil
}

type memDraftStore struct {
	drafts map[string]*wizard.Draft
}

func newMemDraftStore() *memDraftStore {
	return &memDraftStore{drafts: map[string]*wizard.Draft{}}
}

func (s *memDraftStore) Save(_ context.Context, draft *wizard.Draft) error {
	s.drafts[draft.ID] = draft
	return nil
}

func (s *memDraftStore) Get(_ context.Context, draftID string) (*wizard.Draft, error) {
	draft, ok := s.drafts[draftID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "draft not found or expired")
	}
	return draft, nil
}

func (s *memDraftStore) Delete(_ context.Context, draftID string) error {
	delete(s.drafts, draftID)
	return nil
}

type stubCatalog struct{}

func (stubCatalog) Catalog(context.Context) (types.Catalog, string) {
	return catalog.DefaultCatalog(), catalog.SourceDefault
}

func (stubCatalog) Replace(context.Context, types.Catalog) error { return nil }

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func completeDraft() *wizard.Draft {
	draft := wizard.NewDraft(time.Now())
	draft.Items = []types.CakeItemSpec{
		{
			CakeTypeID:  "birthday",
			SizeID:      "medium",
			Quantity:    2,
			Flavor:      "Vanilla",
			Filling:     "Raspberry Jam",
			Frosting:    "Fondant",
			Message:     "Happy 30th!",
			DietaryTags: []string{"Vegan", "Nut-Free"},
		},
	}
	draft.Customer = types.CustomerDetails{Name: "Iris", Email: "iris@example.com", Phone: "07700 900123"}
	draft.Delivery = types.DeliveryDetails{Method: "delivery", Date: "2030-06-01", Address: "1 Baker Street"}
	draft.Step = wizard.StepReview
	return draft
}

func newTestService(t *testing.T) (Service, *stubRepo, *memDraftStore) {
	t.Helper()
	repo := newStubRepo()
	drafts := newMemDraftStore()
	svc, err := NewService(repo, drafts, stubCatalog{}, passthroughTx{}, nil)
	require.NoError(t, err)
	return svc, repo, drafts
}

func TestSubmitSnapshotsOrder(t *testing.T) {
	ctx := context.Background()
	svc, repo, drafts := newTestService(t)

	draft := completeDraft()
	require.NoError(t, drafts.Save(ctx, draft))

	detail, err := svc.Submit(ctx, draft.ID)
	require.NoError(t, err)

	// total is recomputed server-side
	assert.Equal(t, 18600, detail.TotalCents)
	assert.Equal(t, enums.OrderStatusPending, detail.Status)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Birthday Cake", detail.Items[0].CakeTypeName)
	assert.Equal(t, `8" Round`, detail.Items[0].SizeLabel)
	assert.Equal(t, 8900, detail.Items[0].UnitPriceCents)
	assert.Equal(t, 17800, detail.Items[0].TotalCents)
	require.NotNil(t, detail.DeliveryAddress)
	assert.Equal(t, "1 Baker Street", *detail.DeliveryAddress)

	// the draft is spent
	_, err = drafts.Get(ctx, draft.ID)
	require.Error(t, err)
	require.Len(t, repo.created, 1)
}

func TestSubmitIncompleteDraft(t *testing.T) {
	ctx := context.Background()
	svc, repo, drafts := newTestService(t)

	draft := completeDraft()
	draft.Customer.Phone = ""
	require.NoError(t, drafts.Save(ctx, draft))

	_, err := svc.Submit(ctx, draft.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, repo.created)

	// the draft survives a failed submission
	_, err = drafts.Get(ctx, draft.ID)
	require.NoError(t, err)
}

func TestSubmitUnknownCatalogIDs(t *testing.T) {
	ctx := context.Background()
	svc, _, drafts := newTestService(t)

	draft := completeDraft()
	draft.Items[0].CakeTypeID = "discontinued"
	require.NoError(t, drafts.Save(ctx, draft))

	_, err := svc.Submit(ctx, draft.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSubmitMissingDraft(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSubmitPickupHasNoAddress(t *testing.T) {
	ctx := context.Background()
	svc, _, drafts := newTestService(t)

	draft := completeDraft()
	draft.Delivery = types.DeliveryDetails{Method: "pickup", Date: "2030-06-01"}
	require.NoError(t, drafts.Save(ctx, draft))

	detail, err := svc.Submit(ctx, draft.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.DeliveryAddress)
	assert.Equal(t, 17800, detail.TotalCents)
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	now := time.Now()
	for i := 0; i < 3; i++ {
		repo.listAll = append(repo.listAll, models.Order{
			ID:        uuid.New(),
			Status:    enums.OrderStatusPending,
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}

	result, err := svc.List(ctx, "", pagination.Params{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, result.Orders, 2)
	assert.NotEmpty(t, result.NextCursor)

	result, err = svc.List(ctx, "", pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, result.Orders, 3)
	assert.Empty(t, result.NextCursor)
}

func TestListStatusFilter(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	repo.listAll = []models.Order{
		{ID: uuid.New(), Status: enums.OrderStatusPending},
		{ID: uuid.New(), Status: enums.OrderStatusBaking},
	}

	result, err := svc.List(ctx, "baking", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, enums.OrderStatusBaking, result.Orders[0].Status)

	_, err = svc.List(ctx, "shipped", pagination.Params{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, drafts := newTestService(t)

	draft := completeDraft()
	require.NoError(t, drafts.Save(ctx, draft))
	detail, err := svc.Submit(ctx, draft.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, detail.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, updated.Status)

	_, err = svc.UpdateStatus(ctx, detail.ID, "shipped")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.UpdateStatus(ctx, uuid.New(), "confirmed")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, drafts := newTestService(t)

	draft := completeDraft()
	require.NoError(t, drafts.Save(ctx, draft))
	detail, err := svc.Submit(ctx, draft.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, detail.ID))

	err = svc.Delete(ctx, detail.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
