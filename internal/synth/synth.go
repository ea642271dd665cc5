/*
Package synth generates noiseless spectral libraries on label grids
*/
package synth

import (
	"fmt"
	"go-ml.dev/pkg/psi/library"
	"go-ml.dev/pkg/psi/model/features"
	"gonum.org/v1/gonum/mat"
	"math"
)

// FluxFunc is the flux of channel j at labels
type FluxFunc func(logt, logg, feh float64, j int) float64

type Options struct {
	Teff, Logg, FeH []float64
	NWave           int
	SNR             float64 // uniform signal-to-noise, no uncertainties when zero
	C3K             []int   // rows labeled as c3k models
	Flux            FluxFunc
}

func Default() Options {
	return Options{
		Teff:  []float64{4500, 5000, 5500, 6000, 6500},
		Logg:  []float64{3.5, 4.0, 4.5},
		FeH:   []float64{-0.5, 0, 0.3},
		NWave: 20,
		Flux:  Polynomial,
	}
}

/*
Polynomial is exactly representable by PolynomialTerms
*/
func Polynomial(logt, logg, feh float64, j int) float64 {
	x := (logt - 3.76) * 10
	g := logg - 4
	return 2 + 0.1*float64(j) + (1+0.01*float64(j))*x + 0.3*g - 0.2*feh + 0.5*x*x + 0.05*x*feh
}

/*
Exponential is exp(Polynomial/10), its logarithm is exactly representable
by PolynomialTerms
*/
func Exponential(logt, logg, feh float64, j int) float64 {
	return math.Exp(Polynomial(logt, logg, feh, j) / 10)
}

func PolynomialTerms() features.Set {
	return features.MustParseSet("logt", "logg", "feh", "logt^2", "logt*feh")
}

// Schema has teff, logg, feh, derived logt and categorical miles_id
func Schema() *library.Schema {
	s, err := library.NewSchema([]string{library.Teff, library.Logg, library.FeH}, []string{"miles_id"})
	if err != nil {
		panic(err)
	}
	return s
}

/*
New generates a library with one row per grid point
*/
func New(o Options) (*library.Library, error) {
	s := Schema()
	c3k := map[int]bool{}
	for _, i := range o.C3K {
		c3k[i] = true
	}
	var records []library.Record
	for _, t := range o.Teff {
		for _, g := range o.Logg {
			for _, f := range o.FeH {
				id := "miles"
				if c3k[len(records)] {
					id = "c3k"
				}
				r, err := s.Record(fmt.Sprintf("s%03d", len(records)),
					map[string]float64{library.Teff: t, library.Logg: g, library.FeH: f},
					map[string]string{"miles_id": id})
				if err != nil {
					return nil, err
				}
				records = append(records, r)
			}
		}
	}
	table, err := library.NewTable(s, records)
	if err != nil {
		return nil, err
	}
	wave := make([]float64, o.NWave)
	for j := range wave {
		wave[j] = 4000 + 10*float64(j)
	}
	flux := mat.NewDense(len(records), o.NWave, nil)
	for i, r := range records {
		logt, _ := r.Value(library.LogT)
		logg, _ := r.Value(library.Logg)
		feh, _ := r.Value(library.FeH)
		for j := range wave {
			flux.Set(i, j, o.Flux(logt, logg, feh, j))
		}
	}
	d := library.Data{Wavelengths: wave, Flux: flux, Labels: table}
	if o.SNR > 0 {
		unc := mat.NewDense(len(records), o.NWave, nil)
		unc.Scale(1/o.SNR, flux)
		d.Uncertainty = unc
	}
	return library.New(d)
}

// Must is New panicking on error
func Must(o Options) *library.Library {
	l, err := New(o)
	if err != nil {
		panic(err)
	}
	return l
}
