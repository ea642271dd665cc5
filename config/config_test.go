package config

import (
	"go-ml.dev/pkg/psi/library"
	"go-ml.dev/pkg/psi/model"
	"go-ml.dev/pkg/psi/model/features"
	"gotest.tools/assert"
	"os"
	"path/filepath"
	"testing"
)

func Test_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	assert.NilError(t, err)
	assert.Equal(t, len(cfg.Features), 8)
	assert.Equal(t, cfg.Weights.FlagValue, "c3k")
	assert.Equal(t, *cfg.Weights.FlagWeight, 0.1)
	assert.Equal(t, *cfg.Weights.SNRThreshold, 1e-10)
	o, err := cfg.ModelOptions()
	assert.NilError(t, err)
	assert.Equal(t, o.Reference, model.NoReference)
	assert.Equal(t, o.Centering, model.NoCentering)
	assert.Equal(t, o.FlagLabel, "miles_id")
}

const warmGiants = `
features: ["logt", "feh", "logg", "logt^2", "logt*feh", "logt^3"]
bounds:
  teff: [4000, 6000]
  logg: [0.5, 3.5]
bad_values:
  miles_id: ["mdwarf"]
fit:
  log_flux: true
  reference: std
  centering: custom
  center:
    logt: 3.7
weights:
  flag_weight: 0
  snr_threshold: 0
parallel:
  enabled: true
  workers: 4
`

func Test_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "psi.yaml")
	assert.NilError(t, os.WriteFile(path, []byte(warmGiants), 0600))
	cfg, err := Load(path)
	assert.NilError(t, err)

	set, err := cfg.FeatureSet()
	assert.NilError(t, err)
	assert.Equal(t, set.Width(), 7)
	assert.DeepEqual(t, set[5], features.Term{"logt", "logt", "logt"})

	sel, err := cfg.Selection()
	assert.NilError(t, err)
	assert.Equal(t, sel.Bounds["teff"], library.Bound{Min: 4000, Max: 6000})
	assert.DeepEqual(t, sel.BadValues["miles_id"], []string{"mdwarf"})

	o, err := cfg.ModelOptions()
	assert.NilError(t, err)
	assert.Assert(t, o.LogFlux)
	assert.Equal(t, o.Reference, model.StdReference)
	assert.Equal(t, o.Centering, model.CustomCentering)
	assert.Equal(t, o.Center["logt"], 3.7)
	assert.Equal(t, o.FlagWeight, 0.0)
	assert.Assert(t, o.Parallel)
	assert.Equal(t, o.Workers, 4)
	assert.Equal(t, *cfg.Weights.SNRThreshold, 0.0)
	assert.Equal(t, len(cfg.LibraryOptions()), 1)
}

func Test_Invalid(t *testing.T) {
	cfg, err := Parse([]byte("fit: {reference: mean}"))
	assert.NilError(t, err)
	_, err = cfg.ModelOptions()
	assert.ErrorContains(t, err, "unknown reference")

	cfg, err = Parse([]byte("bounds: {teff: [4000]}"))
	assert.NilError(t, err)
	_, err = cfg.Selection()
	assert.ErrorContains(t, err, "[min, max]")

	_, err = Parse([]byte("features: {"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}
