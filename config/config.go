/*
Package config loads model and training set settings from YAML
*/
package config

import (
	"go-ml.dev/pkg/psi/library"
	"go-ml.dev/pkg/psi/model"
	"go-ml.dev/pkg/psi/model/features"
	"go-ml.dev/pkg/zorros"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
)

/*
Config holds the settings of one interpolator
*/
type Config struct {
	Features  []string             `yaml:"features"`
	Bounds    map[string][]float64 `yaml:"bounds"`
	BadValues map[string][]string  `yaml:"bad_values"`
	Fit       FitConfig            `yaml:"fit"`
	Weights   WeightsConfig        `yaml:"weights"`
	Parallel  ParallelConfig       `yaml:"parallel"`
}

/*
FitConfig holds regression target settings
*/
type FitConfig struct {
	LogFlux    bool               `yaml:"log_flux"`
	Unweighted bool               `yaml:"unweighted"`
	Reference  string             `yaml:"reference"` // none | std
	Centering  string             `yaml:"centering"` // none | solar | mean | custom
	Center     map[string]float64 `yaml:"center"`
}

/*
WeightsConfig holds sub-population weighting settings
*/
type WeightsConfig struct {
	FlagLabel    string   `yaml:"flag_label"`
	FlagValue    string   `yaml:"flag_value"`
	FlagWeight   *float64 `yaml:"flag_weight"`
	SNRThreshold *float64 `yaml:"snr_threshold"`
}

/*
ParallelConfig holds channel fan-out settings
*/
type ParallelConfig struct {
	Enabled bool `yaml:"enabled"`
	Workers int  `yaml:"workers"`
}

/*
Load reads and parses the config file at path and applies defaults
*/
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to read config: %v", err.Error())
	}
	return Parse(data)
}

/*
Parse parses YAML config data and applies defaults
*/
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, zorros.Wrapf(err, "failed to parse config: %v", err.Error())
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

/*
FeatureSet parses feature terms
*/
func (c *Config) FeatureSet() (features.Set, error) {
	return features.ParseSet(c.Features...)
}

/*
Selection converts bounds and bad values into a library selection
*/
func (c *Config) Selection() (library.Selection, error) {
	sel := library.Selection{
		Bounds:    map[string]library.Bound{},
		BadValues: map[string][]string{},
	}
	for n, b := range c.Bounds {
		if len(b) != 2 {
			return sel, zorros.Errorf("bound of %q must be [min, max]", n)
		}
		sel.Bounds[n] = library.Bound{Min: b[0], Max: b[1]}
	}
	for n, v := range c.BadValues {
		sel.BadValues[n] = append([]string(nil), v...)
	}
	return sel, nil
}

/*
LibraryOptions returns library construction options
*/
func (c *Config) LibraryOptions() []library.Option {
	return []library.Option{library.SNRThreshold(*c.Weights.SNRThreshold)}
}

/*
ModelOptions converts the config into model options
*/
func (c *Config) ModelOptions() (model.Options, error) {
	o := model.DefaultOptions()
	o.LogFlux = c.Fit.LogFlux
	o.Unweighted = c.Fit.Unweighted
	switch strings.ToLower(c.Fit.Reference) {
	case "", "none":
		o.Reference = model.NoReference
	case "std":
		o.Reference = model.StdReference
	default:
		return o, zorros.Errorf("unknown reference %q", c.Fit.Reference)
	}
	switch strings.ToLower(c.Fit.Centering) {
	case "", "none":
		o.Centering = model.NoCentering
	case "solar":
		o.Centering = model.SolarCentering
	case "mean":
		o.Centering = model.MeanCentering
	case "custom":
		o.Centering = model.CustomCentering
		o.Center = features.Center{}
		for n, v := range c.Fit.Center {
			o.Center[n] = v
		}
	default:
		return o, zorros.Errorf("unknown centering %q", c.Fit.Centering)
	}
	o.FlagLabel = c.Weights.FlagLabel
	o.FlagValue = c.Weights.FlagValue
	if c.Weights.FlagWeight != nil {
		o.FlagWeight = *c.Weights.FlagWeight
	}
	o.Parallel = c.Parallel.Enabled
	o.Workers = c.Parallel.Workers
	return o, nil
}
