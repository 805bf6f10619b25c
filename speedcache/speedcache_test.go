package speedcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("HOME", dir)
}

func TestLoad_MissingFile_ReturnsEmptyCache(t *testing.T) {
	withHome(t, t.TempDir())

	c := Load()
	assert.Empty(t, c)
}

func TestLoad_CorruptFile_ReturnsEmptyCache(t *testing.T) {
	home := t.TempDir()
	withHome(t, home)

	dir := filepath.Join(home, ".compresso")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "speeds.json"), []byte("{not valid json"), 0o644))

	c := Load()
	assert.Empty(t, c)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	withHome(t, t.TempDir())

	c := Cache{
		"zstd": {CompMBs: 410.5, DecompMBs: 520.2, Samples: 3},
	}
	require.NoError(t, Save(c))

	got := Load()
	require.Contains(t, got, "zstd")
	assert.Equal(t, c["zstd"], got["zstd"])
}

func TestUpdate_NewAlgorithm(t *testing.T) {
	c := Cache{}
	out := Update(c, []Sample{{Algo: "zstd", CompMBs: 400, DecompMBs: 500}})

	require.Contains(t, out, "zstd")
	assert.Equal(t, 400.0, out["zstd"].CompMBs)
	assert.Equal(t, 500.0, out["zstd"].DecompMBs)
	assert.Equal(t, 1, out["zstd"].Samples)
}

func TestUpdate_WeightedAverage(t *testing.T) {
	// spec.md §9: (old.avg*old.n + new.avg*k) / (old.n + k)
	c := Cache{"zstd": {CompMBs: 300, DecompMBs: 400, Samples: 2}}

	out := Update(c, []Sample{{Algo: "zstd", CompMBs: 600, DecompMBs: 800}})

	wantComp := (300.0*2 + 600.0*1) / 3
	wantDecomp := (400.0*2 + 800.0*1) / 3
	assert.InDelta(t, wantComp, out["zstd"].CompMBs, 1e-9)
	assert.InDelta(t, wantDecomp, out["zstd"].DecompMBs, 1e-9)
	assert.Equal(t, 3, out["zstd"].Samples)
}

func TestUpdate_GroupsMultipleSamplesForSameAlgoFirst(t *testing.T) {
	c := Cache{}
	out := Update(c, []Sample{
		{Algo: "lz4", CompMBs: 700, DecompMBs: 900},
		{Algo: "lz4", CompMBs: 900, DecompMBs: 1100},
	})

	assert.Equal(t, 800.0, out["lz4"].CompMBs)
	assert.Equal(t, 1000.0, out["lz4"].DecompMBs)
	assert.Equal(t, 2, out["lz4"].Samples)
}

func TestUpdate_IgnoresNonPositiveSamples(t *testing.T) {
	c := Cache{}
	out := Update(c, []Sample{{Algo: "zlib", CompMBs: 0, DecompMBs: 100}})

	assert.Empty(t, out)
}

func TestUpdate_EmptySamples_ReturnsInputUnchanged(t *testing.T) {
	c := Cache{"zlib": {CompMBs: 200, DecompMBs: 250, Samples: 1}}
	out := Update(c, nil)

	assert.Equal(t, c, out)
}

func TestEstimate_UsesCacheWhenPresent(t *testing.T) {
	c := Cache{"zstd": {CompMBs: 410, DecompMBs: 520, Samples: 5}}

	assert.Equal(t, 410.0, Estimate(c, "zstd", OperationCompress))
	assert.Equal(t, 520.0, Estimate(c, "ZSTD", OperationDecompress))
}

func TestEstimate_FallsBackToDefaultTable(t *testing.T) {
	c := Cache{}

	assert.Equal(t, defaultCompMB["bzip2"], Estimate(c, "bzip2", OperationCompress))
	assert.Equal(t, defaultDecompMB["lzma"], Estimate(c, "lzma", OperationDecompress))
}

func TestEstimate_UnknownAlgorithm_FallsBackToFlatDefault(t *testing.T) {
	c := Cache{}
	assert.Equal(t, fallbackMBPerSecond, Estimate(c, "made-up", OperationDecompress))
}
