package model

import (
	"go-ml.dev/pkg/psi/library"
	"go-ml.dev/pkg/psi/model/features"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
	"math"
)

/*
Fitted is a trained polynomial: everything prediction needs, detached
from the library it was trained on
*/
type Fitted struct {
	terms     features.Set
	center    features.Center
	reference []float64 // nil when targets were not divided by a reference
	logFlux   bool
	wave      []float64
	coeffs    *mat.Dense // W×K
}

func (f *Fitted) Features() []string {
	return f.terms.Strings()
}

func (f *Fitted) FeatureSet() features.Set {
	return append(features.Set(nil), f.terms...)
}

func (f *Fitted) Wavelengths() []float64 {
	return append([]float64(nil), f.wave...)
}

// Center returns centering constants used by the fit
func (f *Fitted) Center() features.Center {
	c := features.Center{}
	for k, v := range f.center {
		c[k] = v
	}
	return c
}

// Reference returns the reference spectrum, nil when not used
func (f *Fitted) Reference() []float64 {
	return append([]float64(nil), f.reference...)
}

func (f *Fitted) LogFlux() bool {
	return f.logFlux
}

// Coefficients returns the W×K coefficient matrix, it must not be modified
func (f *Fitted) Coefficients() mat.Matrix {
	return f.coeffs
}

/*
Predict evaluates the polynomial of every channel at record labels.
A record without a label used by the terms fails with MissingLabelError.
*/
func (f *Fitted) Predict(r library.Record) ([]float64, error) {
	x, err := features.Row(f.terms, r, f.center)
	if err != nil {
		var u *library.UnknownLabelError
		if xerrors.As(err, &u) {
			return nil, &library.MissingLabelError{Label: u.Label}
		}
		return nil, err
	}
	nw, _ := f.coeffs.Dims()
	y := mat.NewVecDense(nw, nil)
	y.MulVec(f.coeffs, mat.NewVecDense(len(x), x))
	out := y.RawVector().Data
	for j := range out {
		if f.logFlux {
			out[j] = math.Exp(out[j])
		}
		if f.reference != nil {
			out[j] *= f.reference[j]
		}
	}
	return out, nil
}
