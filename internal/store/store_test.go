package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"solar-proposal/internal/model"
	"solar-proposal/internal/simulation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() simulation.Input {
	s := model.DefaultSettings()
	s.CapacityKW = 500
	s.BusinessModel = model.ModelREC5
	s.UseEC = true
	s.ECFleetSize = 2
	manual := 1_500_000.0
	return simulation.Input{
		Records: []model.MonthlyRecord{
			{Month: 1, UsageKWh: 50_000, SelfConsumption: 30_000, PeakKW: 420},
			{Month: 2, UsageKWh: 48_000, SelfConsumption: 29_000},
		},
		Settings:        s,
		Rationalization: model.RationalizationInputs{Base: model.TariffRow{Manual: &manual}},
		Pricing:         model.DefaultPricing(),
	}
}

// exerciseStore runs the CRUD contract every backend must satisfy.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	p := &Project{Name: "Factory", ClientName: "ACME", Input: sampleInput()}
	require.NoError(t, s.Create(ctx, p))
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Factory", got.Name)
	assert.Equal(t, "ACME", got.ClientName)
	assert.Equal(t, p.Input, got.Input)
	assert.WithinDuration(t, p.CreatedAt, got.CreatedAt, time.Millisecond)

	time.Sleep(2 * time.Millisecond)
	second := &Project{Name: "Warehouse", Input: sampleInput()}
	require.NoError(t, s.Create(ctx, second))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "most recently updated first")

	time.Sleep(2 * time.Millisecond)
	got.Name = "Factory (revised)"
	got.Input.Settings.CapacityKW = 750
	require.NoError(t, s.Update(ctx, got))
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	again, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Factory (revised)", again.Name)
	assert.Equal(t, 750.0, again.Input.Settings.CapacityKW)
	assert.WithinDuration(t, p.CreatedAt, again.CreatedAt, time.Millisecond)

	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, list[0].ID)

	require.NoError(t, s.Delete(ctx, p.ID))
	_, err = s.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, p.ID), ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, &Project{ID: uuid.New(), Name: "ghost"}), ErrNotFound)

	require.NoError(t, s.Delete(ctx, second.ID))
	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "projects.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	exerciseStore(t, s)
}

func TestSQLiteStoreInMemory(t *testing.T) {
	s, err := Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	exerciseStore(t, s)
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	p := &Project{Name: "Kept", Input: sampleInput()}
	require.NoError(t, s.Create(context.Background(), p))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Name)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := NewPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.pool.Exec(ctx, `DELETE FROM solar_projects`)
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "")
	assert.ErrorContains(t, err, "unknown database driver")
}

func TestOpenPostgresWithoutDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Open(context.Background(), "postgres", "")
	assert.ErrorContains(t, err, "DATABASE_URL")
}
