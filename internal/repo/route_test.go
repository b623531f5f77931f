package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstojanov/bus-ticketing/backend/internal/repo"
)

// setupRoute creates a line and n fresh stops inside the test transaction and
// returns the line ID plus the stop IDs in creation order.
func setupRoute(t *testing.T, tx pgx.Tx, n int) (uuid.UUID, []uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	line, err := repo.NewLineRepo(tx).Create(ctx, testLine())
	require.NoError(t, err)

	stopRepo := repo.NewStopRepo(tx)
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		stop, err := stopRepo.Create(ctx, testStop())
		require.NoError(t, err)
		ids = append(ids, stop.ID)
	}
	return line.ID, ids
}

func TestRouteRepo_Replace_AssignsContiguousPositions(t *testing.T) {
	tx := newTestTx(t)
	routeRepo := repo.NewRouteRepo(tx)
	ctx := context.Background()

	lineID, stops := setupRoute(t, tx, 3)

	require.NoError(t, routeRepo.Replace(ctx, lineID, stops))

	route, err := routeRepo.ListByLineID(ctx, lineID)
	require.NoError(t, err)
	require.Len(t, route, 3)
	for i, rs := range route {
		assert.Equal(t, i+1, rs.Position, "positions must be 1..N in order")
		assert.Equal(t, stops[i], rs.StopID)
		assert.NotEmpty(t, rs.StopName, "stop name must be joined in")
	}
}

func TestRouteRepo_Replace_DiscardsPriorRoute(t *testing.T) {
	tx := newTestTx(t)
	routeRepo := repo.NewRouteRepo(tx)
	ctx := context.Background()

	lineID, stops := setupRoute(t, tx, 3)

	require.NoError(t, routeRepo.Replace(ctx, lineID, stops))
	// Second replace with a shorter, reordered list.
	require.NoError(t, routeRepo.Replace(ctx, lineID, []uuid.UUID{stops[2], stops[0]}))

	route, err := routeRepo.ListByLineID(ctx, lineID)
	require.NoError(t, err)
	require.Len(t, route, 2, "old entries must not survive the replace")
	assert.Equal(t, stops[2], route[0].StopID)
	assert.Equal(t, stops[0], route[1].StopID)
}

func TestRouteRepo_Replace_AllowsDuplicateStops(t *testing.T) {
	tx := newTestTx(t)
	routeRepo := repo.NewRouteRepo(tx)
	ctx := context.Background()

	lineID, stops := setupRoute(t, tx, 2)

	// A loop route: first stop appears at both ends.
	loop := []uuid.UUID{stops[0], stops[1], stops[0]}
	require.NoError(t, routeRepo.Replace(ctx, lineID, loop))

	route, err := routeRepo.ListByLineID(ctx, lineID)
	require.NoError(t, err)
	require.Len(t, route, 3)
	assert.Equal(t, stops[0], route[0].StopID)
	assert.Equal(t, stops[0], route[2].StopID)
}

func TestRouteRepo_Replace_UnknownStopLeavesRouteIntact(t *testing.T) {
	tx := newTestTx(t)
	routeRepo := repo.NewRouteRepo(tx)
	ctx := context.Background()

	lineID, stops := setupRoute(t, tx, 2)
	require.NoError(t, routeRepo.Replace(ctx, lineID, stops))

	// A nonexistent stop violates the FK; the whole replace must roll back.
	err := routeRepo.Replace(ctx, lineID, []uuid.UUID{stops[0], uuid.New()})
	require.Error(t, err)

	route, err := routeRepo.ListByLineID(ctx, lineID)
	require.NoError(t, err)
	assert.Len(t, route, 2, "failed replace must not leave a partial route")
	assert.Equal(t, stops[0], route[0].StopID)
	assert.Equal(t, stops[1], route[1].StopID)
}

func TestRouteRepo_ListByLineID_EmptyForUnroutedLine(t *testing.T) {
	tx := newTestTx(t)
	routeRepo := repo.NewRouteRepo(tx)
	ctx := context.Background()

	lineID, _ := setupRoute(t, tx, 0)

	route, err := routeRepo.ListByLineID(ctx, lineID)
	require.NoError(t, err)
	assert.Empty(t, route)
}
