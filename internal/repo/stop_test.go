package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstojanov/bus-ticketing/backend/internal/domain"
	"github.com/mstojanov/bus-ticketing/backend/internal/repo"
	"github.com/mstojanov/bus-ticketing/backend/testutil"
)

// newTestTx opens a single transaction against the test database and rolls it
// back when the test finishes. All repos built on this transaction share its
// view, so test rows never leak into the (seeded) shared database.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

func floatPtr(f float64) *float64 { return &f }

// testStop returns a Stop ready for insertion, named so it cannot collide
// with the seeded network.
func testStop() domain.Stop {
	return domain.Stop{
		Name:      "Test Depot " + uuid.NewString(),
		Latitude:  floatPtr(41.9981),
		Longitude: floatPtr(21.4254),
	}
}

func TestStopRepo_Create(t *testing.T) {
	stopRepo := repo.NewStopRepo(newTestTx(t))
	ctx := context.Background()

	input := testStop()

	got, err := stopRepo.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.UUID{}, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Name, got.Name)
	require.NotNil(t, got.Latitude)
	assert.InDelta(t, *input.Latitude, *got.Latitude, 1e-9)
	require.NotNil(t, got.Longitude)
	assert.InDelta(t, *input.Longitude, *got.Longitude, 1e-9)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestStopRepo_Create_WithoutCoordinates(t *testing.T) {
	stopRepo := repo.NewStopRepo(newTestTx(t))
	ctx := context.Background()

	input := testStop()
	input.Latitude = nil
	input.Longitude = nil

	got, err := stopRepo.Create(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, got.Latitude, "Latitude should stay nil")
	assert.Nil(t, got.Longitude, "Longitude should stay nil")
}

func TestStopRepo_GetByID(t *testing.T) {
	stopRepo := repo.NewStopRepo(newTestTx(t))
	ctx := context.Background()

	created, err := stopRepo.Create(ctx, testStop())
	require.NoError(t, err)

	got, err := stopRepo.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
}

func TestStopRepo_GetByID_NotFound(t *testing.T) {
	stopRepo := repo.NewStopRepo(newTestTx(t))

	_, err := stopRepo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopRepo_List_ContainsCreated(t *testing.T) {
	stopRepo := repo.NewStopRepo(newTestTx(t))
	ctx := context.Background()

	created, err := stopRepo.Create(ctx, testStop())
	require.NoError(t, err)

	stops, err := stopRepo.List(ctx)

	require.NoError(t, err)
	var found bool
	for _, s := range stops {
		if s.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found, "created stop should appear in List")
}

func TestStopRepo_Update(t *testing.T) {
	stopRepo := repo.NewStopRepo(newTestTx(t))
	ctx := context.Background()

	created, err := stopRepo.Create(ctx, testStop())
	require.NoError(t, err)

	created.Name = "Renamed Depot " + uuid.NewString()
	created.Latitude = floatPtr(42.0)
	created.Longitude = nil

	got, err := stopRepo.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	require.NotNil(t, got.Latitude)
	assert.InDelta(t, 42.0, *got.Latitude, 1e-9)
	assert.Nil(t, got.Longitude, "Longitude should be cleared")
}

func TestStopRepo_Update_NotFound(t *testing.T) {
	stopRepo := repo.NewStopRepo(newTestTx(t))

	missing := testStop()
	missing.ID = uuid.New()

	_, err := stopRepo.Update(context.Background(), missing)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopRepo_Delete(t *testing.T) {
	stopRepo := repo.NewStopRepo(newTestTx(t))
	ctx := context.Background()

	created, err := stopRepo.Create(ctx, testStop())
	require.NoError(t, err)

	require.NoError(t, stopRepo.Delete(ctx, created.ID))

	_, err = stopRepo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopRepo_Delete_NotFound(t *testing.T) {
	stopRepo := repo.NewStopRepo(newTestTx(t))

	err := stopRepo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopRepo_Delete_RejectsRoutedStop(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	lineID, stops := setupRoute(t, tx, 2)
	require.NoError(t, repo.NewRouteRepo(tx).Replace(ctx, lineID, stops))

	// The failed delete aborts its transaction, so run it in a savepoint to
	// keep the outer test transaction usable for the follow-up assertions.
	inner, err := tx.Begin(ctx)
	require.NoError(t, err)
	err = repo.NewStopRepo(inner).Delete(ctx, stops[0])
	require.NoError(t, inner.Rollback(ctx))

	assert.ErrorIs(t, err, domain.ErrBusinessRule)

	// The stop and the route it belongs to are untouched.
	_, err = repo.NewStopRepo(tx).GetByID(ctx, stops[0])
	require.NoError(t, err)
	route, err := repo.NewRouteRepo(tx).ListByLineID(ctx, lineID)
	require.NoError(t, err)
	assert.Len(t, route, 2)
}
