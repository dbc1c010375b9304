package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BohemiaEstudio/salon-scheduler/internal/db"
	infraRepo "github.com/BohemiaEstudio/salon-scheduler/internal/infra/repository"
)

func newTestStore(t *testing.T, name string) (*Store, *infraRepo.SchedulingGormRepository) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(gdb))

	repo := infraRepo.NewSchedulingGormRepository(gdb)
	return NewStore(repo), repo
}

func TestStore_LoadsSeededDefaults(t *testing.T) {
	store, _ := newTestStore(t, "policy_defaults")

	require.NoError(t, store.Load(context.Background()))

	cur := store.Current()
	assert.Equal(t, 60, cur.SlotGranularityMin)
	assert.Equal(t, 30, cur.BookingHorizonDays)
	assert.Equal(t, 24, cur.DepositDeadlineHours)
	assert.Equal(t, 1, cur.MaxReprogramCount)
	assert.Equal(t, 48, cur.CancelCutoffHours)
}

func TestStore_SnapshotUntilRefresh(t *testing.T) {
	store, repo := newTestStore(t, "policy_refresh")
	require.NoError(t, store.Load(context.Background()))

	p, err := repo.GetPolicy(context.Background())
	require.NoError(t, err)
	p.SlotGranularityMin = 30
	p.BookingHorizonDays = 60
	require.NoError(t, repo.SavePolicy(context.Background(), p))

	// la edición no se ve hasta el Refresh explícito
	assert.Equal(t, 60, store.Current().SlotGranularityMin)

	require.NoError(t, store.Refresh(context.Background()))
	assert.Equal(t, 30, store.Current().SlotGranularityMin)
	assert.Equal(t, 60, store.Current().BookingHorizonDays)
}
