package database

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hobbydesk/paintctl/pkg/catalog"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Initialize(filepath.Join(t.TempDir(), "catalog.db")))
	t.Cleanup(func() { Close() })
}

func TestCreateAndGetRun(t *testing.T) {
	setupDB(t)

	run, err := CreateRun("combined.json", 3)
	require.NoError(t, err)
	assert.NotZero(t, run.ID)

	got, err := GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, "combined.json", got.Source)
	assert.Equal(t, 3, got.RecordCount)
}

func TestGetRecentRuns(t *testing.T) {
	setupDB(t)

	first, err := CreateRun("first.json", 1)
	require.NoError(t, err)
	second, err := CreateRun("second.json", 2)
	require.NoError(t, err)

	runs, err := GetRecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)

	latest, err := GetLatestRun()
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.NotEqual(t, first.ID, latest.ID)
}

func TestAddAndQueryPaints(t *testing.T) {
	setupDB(t)

	records := []catalog.Record{
		{"id": "citadel-1", "name": "Abaddon Black", "brand": "Citadel", "range": "Base", "hex": "#231f20"},
		{"id": "vallejo-1", "name": "Bloody Red", "brand": "Vallejo", "range": "Game Color"},
		{"id": json.Number("42"), "name": "Numeric"},
		{"name": "No ID"},
	}

	run, err := CreateRun("combined.json", len(records))
	require.NoError(t, err)
	require.NoError(t, AddPaints(run.ID, records))

	count, err := CountPaints(run.ID)
	require.NoError(t, err)
	assert.Equal(t, len(records), count)

	paints, err := GetPaints(run.ID)
	require.NoError(t, err)
	require.Len(t, paints, len(records))
	assert.Equal(t, "citadel-1", paints[0].PaintID)
	assert.Equal(t, "Citadel", paints[0].Brand)
	assert.Equal(t, "Base", paints[0].Range)
	assert.Equal(t, "42", paints[2].PaintID)
	assert.Empty(t, paints[3].PaintID)

	byBrand, err := GetPaintsByBrand(run.ID, "Vallejo")
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, "Bloody Red", byBrand[0].Name)
}

func TestBrandFallsBackToIDPrefix(t *testing.T) {
	setupDB(t)

	records := []catalog.Record{
		{"id": "citadel-99189950001", "name": "Abaddon Black"},
	}
	run, err := CreateRun("combined.json", len(records))
	require.NoError(t, err)
	require.NoError(t, AddPaints(run.ID, records))

	paints, err := GetPaints(run.ID)
	require.NoError(t, err)
	require.Len(t, paints, 1)
	assert.Equal(t, "citadel", paints[0].Brand)
}

func TestGetBrandCounts(t *testing.T) {
	setupDB(t)

	records := []catalog.Record{
		{"id": "a", "brand": "Vallejo"},
		{"id": "b", "brand": "Vallejo"},
		{"id": "c", "brand": "Citadel"},
	}
	run, err := CreateRun("combined.json", len(records))
	require.NoError(t, err)
	require.NoError(t, AddPaints(run.ID, records))

	counts, err := GetBrandCounts(run.ID)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, BrandCount{Brand: "Citadel", Count: 1}, counts[0])
	assert.Equal(t, BrandCount{Brand: "Vallejo", Count: 2}, counts[1])
}

func TestDeleteRun(t *testing.T) {
	setupDB(t)

	run, err := CreateRun("combined.json", 1)
	require.NoError(t, err)
	require.NoError(t, AddPaints(run.ID, []catalog.Record{{"id": "a"}}))
	require.NoError(t, DeleteRun(run.ID))

	count, err := CountPaints(run.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = GetRun(run.ID)
	assert.Error(t, err)
}
