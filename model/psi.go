/*
Package model fits a polynomial of stellar labels to every wavelength
channel of a spectral library and predicts spectra at arbitrary labels
*/
package model

import (
	"go-ml.dev/pkg/psi/library"
	"go-ml.dev/pkg/psi/model/features"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"gonum.org/v1/gonum/mat"
)

/*
Model is the polynomial spectral interpolator bound to a library.
It owns the fit, the library owns the inclusion mask. Mutating the mask
or the features makes the fit stale until the next Train.
*/
type Model struct {
	lib      *library.Library
	options  Options
	features features.Set
	fit      *Fitted
	version  uint64
}

func New(lib *library.Library, set features.Set, options Options) (*Model, error) {
	if lib == nil {
		return nil, zorros.Errorf("model requires a library")
	}
	m := &Model{lib: lib, options: options}
	if err := m.SetFeatures(set); err != nil {
		return nil, err
	}
	return m, nil
}

/*
SetFeatures replaces the feature terms and drops the current fit
*/
func (m *Model) SetFeatures(set features.Set) error {
	if err := set.Validate(m.lib.Schema()); err != nil {
		return err
	}
	m.features = append(features.Set(nil), set...)
	m.fit = nil
	return nil
}

func (m *Model) Library() *library.Library {
	return m.lib
}

func (m *Model) Options() Options {
	return m.options
}

func (m *Model) FeatureSet() features.Set {
	return append(features.Set(nil), m.features...)
}

func (m *Model) Features() []string {
	return m.features.Strings()
}

func (m *Model) Wavelengths() []float64 {
	return m.lib.Wavelengths()
}

// Trained reports whether a fit exists, possibly stale
func (m *Model) Trained() bool {
	return m.fit != nil
}

// Stale reports whether the library changed after the last Train
func (m *Model) Stale() bool {
	return m.fit != nil && m.version != m.lib.Version()
}

// Fitted returns the last fit or nil
func (m *Model) Fitted() *Fitted {
	return m.fit
}

/*
Coefficients returns a copy of the W×K coefficient matrix, nil before training
*/
func (m *Model) Coefficients() *mat.Dense {
	if m.fit == nil {
		return nil
	}
	return mat.DenseCopyOf(m.fit.coeffs)
}

/*
Predict returns the spectrum at labels of r
*/
func (m *Model) Predict(r library.Record) ([]float64, error) {
	if m.fit == nil {
		return nil, ErrNotTrained
	}
	if m.Stale() {
		zlog.Warning("model: predicting with a fit made before the library changed")
	}
	return m.fit.Predict(r)
}
