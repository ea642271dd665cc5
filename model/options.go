package model

import (
	"go-ml.dev/pkg/psi/model/features"
	"go-ml.dev/pkg/psi/model/weights"
)

/*
Reference selects the spectrum training targets are divided by
*/
type Reference int

const (
	NoReference  Reference = iota
	StdReference           // population standard deviation of training flux
)

/*
Centering selects constants subtracted from labels before terms are evaluated
*/
type Centering int

const (
	NoCentering     Centering = iota
	SolarCentering            // features.Solar
	MeanCentering             // mean of training labels, resolved at every Train
	CustomCentering           // Options.Center
)

/*
Options of the polynomial spectral model
*/
type Options struct {
	LogFlux    bool            // fit log(flux) instead of flux
	Unweighted bool            // ordinary least squares even if uncertainties are known
	Reference  Reference       // fit flux relative to a reference spectrum
	Centering  Centering       // label centering
	Center     features.Center // centering constants for CustomCentering

	FlagLabel  string  // categorical label marking a down weighted sub-population
	FlagValue  string  // value of FlagLabel marking it
	FlagWeight float64 // weight of flagged rows relative to the median of others

	Parallel bool         // solve channels concurrently
	Workers  int          // concurrent solvers, GOMAXPROCS when zero
	Verbose  func(string) // optional progress output
}

/*
DefaultOptions returns options weighting c3k models at 0.1 of the median
weight of observed spectra
*/
func DefaultOptions() Options {
	return Options{
		FlagLabel:  weights.DefaultFlagLabel,
		FlagValue:  weights.DefaultFlagValue,
		FlagWeight: weights.DefaultFlagWeight,
	}
}

func (o Options) verbose(s string) {
	if o.Verbose != nil {
		o.Verbose(s)
	}
}
