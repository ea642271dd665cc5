package config

import "go-ml.dev/pkg/psi/model/weights"

/*
ApplyDefaults sets default values of absent settings
*/
func ApplyDefaults(cfg *Config) {
	if cfg.Fit.Reference == "" {
		cfg.Fit.Reference = "none"
	}
	if cfg.Fit.Centering == "" {
		cfg.Fit.Centering = "none"
	}
	if cfg.Weights.FlagLabel == "" {
		cfg.Weights.FlagLabel = weights.DefaultFlagLabel
	}
	if cfg.Weights.FlagValue == "" {
		cfg.Weights.FlagValue = weights.DefaultFlagValue
	}
	// zero is a legal flag weight and threshold, only absent ones get defaults
	if cfg.Weights.FlagWeight == nil {
		w := weights.DefaultFlagWeight
		cfg.Weights.FlagWeight = &w
	}
	if cfg.Weights.SNRThreshold == nil {
		v := weights.DefaultSNRThreshold
		cfg.Weights.SNRThreshold = &v
	}
	if cfg.Features == nil {
		cfg.Features = []string{"logt", "feh", "logg", "logt^2", "feh^2", "logg^2", "logt*feh", "logt^3"}
	}
}
