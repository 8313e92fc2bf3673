package storage

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/globalkin/internal/config"
	"github.com/san-kum/globalkin/internal/dynamo"
	"github.com/san-kum/globalkin/internal/experiment"
	"github.com/san-kum/globalkin/internal/tecplot"
)

func sampleTrajectory() *dynamo.Trajectory {
	tr := dynamo.NewTrajectory(2)
	tr.Labels = []string{"e", "Ar"}
	tr.Append(0, dynamo.State{1e10, 2.5e21})
	tr.Append(1e-12, dynamo.State{1.0000001e10, 2.4999999e21})
	tr.StepsTaken = 2
	tr.Metrics["charge_drift"] = 0
	return tr
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())
	t.Cleanup(func() { _ = st.Close() })

	runID, err := st.Save(RunMetadata{
		Network:     "argon",
		Temperature: 5.4,
		TEnd:        2e-12,
		Dt:          1e-12,
		Guard:       "flag",
		Integrator:  "euler",
	}, sampleTrajectory())
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "argon", meta.Network)
	assert.Equal(t, 5.4, meta.Temperature)
	assert.Equal(t, 2, meta.Steps)
	assert.Equal(t, []string{"e", "Ar"}, meta.Labels)
	assert.False(t, meta.Degraded)
	assert.Contains(t, meta.Metrics, "charge_drift")

	states, times, err := st.LoadStates(runID)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, []float64{0, 1e-12}, times)
	assert.Equal(t, []float64{1.0000001e10, 2.4999999e21}, states[1])
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())
	t.Cleanup(func() { _ = st.Close() })

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = st.Save(RunMetadata{Network: "argon", Dt: 1e-12}, sampleTrajectory())
	require.NoError(t, err)
	_, err = st.Save(RunMetadata{Network: "argon-direct", Dt: 1e-12}, sampleTrajectory())
	require.NoError(t, err)

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "argon", runs[0].Network)
	assert.Equal(t, "argon-direct", runs[1].Network)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())
	t.Cleanup(func() { _ = st.Close() })

	runID, err := st.Save(RunMetadata{Network: "argon"}, sampleTrajectory())
	require.NoError(t, err)

	for _, name := range []string{"metadata.json", "states.csv", "trajectory.tec"} {
		_, err := os.Stat(filepath.Join(dir, runID, name))
		assert.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(dir, "catalog.db"))
	assert.NoError(t, err)

	tbl, err := tecplot.Load(st.TecplotPath(runID))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Points())
	col, ok := tbl.Lookup("ar")
	require.True(t, ok)
	assert.Equal(t, []float64{2.5e21, 2.4999999e21}, col.Values)
}

func TestStoreDegradedRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())
	t.Cleanup(func() { _ = st.Close() })

	tr := sampleTrajectory()
	tr.Mark(dynamo.Degradation{Step: 1, Time: 1e-12, Species: 0, Value: -1, Kind: dynamo.Negative})

	runID, err := st.Save(RunMetadata{Network: "argon"}, tr)
	require.NoError(t, err)

	back, meta, err := st.LoadTrajectory(runID)
	require.NoError(t, err)
	assert.True(t, meta.Degraded)
	assert.Equal(t, 1, meta.DegradedStep)
	assert.False(t, back.Trusted())
	assert.Equal(t, tr.Times, back.Times)
	assert.Equal(t, tr.Labels, back.Labels)
}

func TestStoreSaveOverflowingRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dt = 1
	cfg.TEnd = 40

	exp := experiment.New(*cfg)
	require.NoError(t, exp.Setup(experiment.NewRegistry(), "euler"))
	result, err := exp.Run(context.Background())
	require.NoError(t, err)
	require.False(t, result.Trusted())

	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())
	t.Cleanup(func() { _ = st.Close() })

	runID, err := st.Save(RunMetadata{Network: "argon", Temperature: cfg.Temperature, Dt: cfg.Dt, TEnd: cfg.TEnd}, result)
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.True(t, meta.Degraded)
	for name, v := range meta.Metrics {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "metric %s is %g", name, v)
	}

	states, times, err := st.LoadStates(runID)
	require.NoError(t, err)
	assert.Len(t, times, result.Len())
	assert.Len(t, states, result.Len())

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
}

func TestStoreSaveDropsNonFiniteMetrics(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())
	t.Cleanup(func() { _ = st.Close() })

	tr := sampleTrajectory()
	tr.Metrics["heavy_drift"] = math.NaN()
	tr.Metrics["charge_drift"] = math.Inf(1)
	tr.Metrics["positivity"] = 0.5

	runID, err := st.Save(RunMetadata{Network: "argon"}, tr)
	require.NoError(t, err)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"positivity": 0.5}, meta.Metrics)
	assert.True(t, math.IsNaN(tr.Metrics["heavy_drift"]), "trajectory metrics must not be modified")
}

func TestStoreDelete(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())
	t.Cleanup(func() { _ = st.Close() })

	runID, err := st.Save(RunMetadata{Network: "argon"}, sampleTrajectory())
	require.NoError(t, err)

	require.NoError(t, st.Delete(runID))
	_, err = os.Stat(filepath.Join(dir, runID))
	assert.True(t, os.IsNotExist(err))

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	assert.Error(t, st.Delete(runID))
}
