package orders

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/pagination"
)

// Database-backed tests run against a migrated Postgres instance and skip
// when no DSN is configured.
func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("CRUMB_DB_DSN")
	if dsn == "" {
		t.Skip("CRUMB_DB_DSN not set, skipping database-backed tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec("DELETE FROM order_items").Error)
	require.NoError(t, db.Exec("DELETE FROM orders").Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, createdAt time.Time, status enums.OrderStatus) *models.Order {
	t.Helper()

	address := "12 Sugarloaf Lane"
	order := &models.Order{
		ID:              uuid.New(),
		CustomerName:    fmt.Sprintf("Customer %s", createdAt.Format("150405")),
		CustomerEmail:   "customer@example.com",
		CustomerPhone:   "0123 456789",
		DeliveryMethod:  enums.DeliveryMethodDelivery,
		DeliveryDate:    createdAt.AddDate(0, 0, 14),
		DeliveryAddress: &address,
		TotalCents:      12400,
		Status:          status,
		CreatedAt:       createdAt,
		Items: []models.OrderItem{
			{
				CakeTypeID:     "birthday",
				CakeTypeName:   "Birthday Cake",
				SizeID:         "medium",
				SizeLabel:      `8" Round`,
				Quantity:       2,
				Flavor:         "Vanilla",
				UnitPriceCents: 6200,
				TotalCents:     12400,
			},
		},
	}
	require.NoError(t, NewRepository(db).Create(context.Background(), order))
	return order
}

func TestRepositoryCreateAndGetByID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	seeded := seedOrder(t, db, time.Now().UTC(), enums.OrderStatusPending)

	got, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, enums.OrderStatusPending, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Birthday Cake", got.Items[0].CakeTypeName)
	assert.Equal(t, 12400, got.TotalCents)
}

func TestRepositoryListCursorPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	base := time.Now().UTC().Truncate(time.Second)
	oldest := seedOrder(t, db, base.Add(-2*time.Hour), enums.OrderStatusPending)
	middle := seedOrder(t, db, base.Add(-time.Hour), enums.OrderStatusPending)
	newest := seedOrder(t, db, base, enums.OrderStatusPending)

	first, err := repo.List(context.Background(), ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, newest.ID, first[0].ID)
	assert.Equal(t, middle.ID, first[1].ID)

	rest, err := repo.List(context.Background(), ListFilter{
		Limit: 2,
		Cursor: &pagination.Cursor{
			CreatedAt: first[1].CreatedAt,
			ID:        first[1].ID,
		},
	})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, oldest.ID, rest[0].ID)
}

func TestRepositoryListStatusFilter(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	base := time.Now().UTC()
	seedOrder(t, db, base.Add(-time.Minute), enums.OrderStatusPending)
	cancelled := seedOrder(t, db, base, enums.OrderStatusCancelled)

	status := enums.OrderStatusCancelled
	rows, err := repo.List(context.Background(), ListFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, cancelled.ID, rows[0].ID)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	seeded := seedOrder(t, db, time.Now().UTC(), enums.OrderStatusPending)

	require.NoError(t, repo.UpdateStatus(context.Background(), seeded.ID, enums.OrderStatusBaking))

	got, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusBaking, got.Status)

	err = repo.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusBaking)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDeleteCascadesItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	seeded := seedOrder(t, db, time.Now().UTC(), enums.OrderStatusPending)

	require.NoError(t, repo.Delete(context.Background(), seeded.ID))

	_, err := repo.GetByID(context.Background(), seeded.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var remaining int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", seeded.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), gorm.ErrRecordNotFound)
}
