/*
Package library holds a spectral library: labels of reference stars, their
spectra and the inclusion mask selecting training rows
*/
package library

import (
	"fmt"
	"go-ml.dev/pkg/psi/model/weights"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"gonum.org/v1/gonum/mat"
	"math"
)

/*
Data is a library as supplied by a loader
*/
type Data struct {
	Wavelengths []float64  // strictly increasing, length W
	Flux        mat.Matrix // N×W
	Uncertainty mat.Matrix // N×W, optional
	Labels      *Table     // N rows
}

/*
Library is a set of labeled spectra with an inclusion mask
*/
type Library struct {
	wave      []float64
	flux      *mat.Dense
	snr       *mat.Dense
	labels    *Table
	mask      []bool
	version   uint64
	badFlux   float64
	threshold float64
}

type Option func(*Library)

// SNRThreshold sets the SNR below which pixels are zero weighted
func SNRThreshold(v float64) Option {
	return func(l *Library) { l.threshold = v }
}

/*
New validates and copies data. Pixels with low or non-finite SNR are
sanitized as weights.Sanitize describes.
*/
func New(d Data, opts ...Option) (*Library, error) {
	if d.Flux == nil || d.Labels == nil {
		return nil, zorros.Errorf("library requires flux and labels")
	}
	n, w := d.Flux.Dims()
	if len(d.Wavelengths) != w {
		return nil, zorros.Errorf("flux has %d channels but there are %d wavelengths", w, len(d.Wavelengths))
	}
	for i := 1; i < w; i++ {
		if !(d.Wavelengths[i] > d.Wavelengths[i-1]) {
			return nil, zorros.Errorf("wavelengths are not strictly increasing at %d", i)
		}
	}
	if d.Labels.Len() != n {
		return nil, zorros.Errorf("flux has %d rows but there are %d label records", n, d.Labels.Len())
	}
	l := &Library{
		wave:      append([]float64(nil), d.Wavelengths...),
		flux:      mat.DenseCopyOf(d.Flux),
		labels:    d.Labels,
		threshold: weights.DefaultSNRThreshold,
	}
	for _, o := range opts {
		o(l)
	}
	if d.Uncertainty != nil {
		if un, uw := d.Uncertainty.Dims(); un != n || uw != w {
			return nil, zorros.Errorf("uncertainty is %dx%d, flux is %dx%d", un, uw, n, w)
		}
		l.snr = mat.NewDense(n, w, nil)
		l.snr.DivElem(l.flux, d.Uncertainty)
	}
	var bad int
	l.badFlux, bad = weights.Sanitize(l.flux, l.snr, l.threshold)
	if bad > 0 {
		zlog.Warning(fmt.Sprintf("library: %d of %d pixels have bad flux, replaced by %g", bad, n*w, l.badFlux))
	}
	l.ResetMask()
	return l, nil
}

func (l *Library) Len() int {
	return len(l.mask)
}

func (l *Library) NWave() int {
	return len(l.wave)
}

func (l *Library) Wavelengths() []float64 {
	return append([]float64(nil), l.wave...)
}

func (l *Library) Schema() *Schema {
	return l.labels.schema
}

// Labels returns labels of all library rows
func (l *Library) Labels() *Table {
	return l.labels
}

func (l *Library) Record(i int) Record {
	return l.labels.Record(i)
}

// Flux returns a copy of spectrum i
func (l *Library) Flux(i int) []float64 {
	if i < 0 || i >= len(l.mask) {
		return nil
	}
	return append([]float64(nil), l.flux.RawRowView(i)...)
}

// HasErrors reports whether uncertainties were supplied
func (l *Library) HasErrors() bool {
	return l.snr != nil
}

// SNR returns library signal-to-noise, nil without uncertainties
func (l *Library) SNR() mat.Matrix {
	if l.snr == nil {
		return nil
	}
	return l.snr
}

// BadFluxValue is the flux assigned to sanitized pixels
func (l *Library) BadFluxValue() float64 {
	return l.badFlux
}

/*
Renormalize divides every spectrum by the value of a numeric label of its
row, e.g. bolometric luminosity
*/
func (l *Library) Renormalize(label string) error {
	col, err := l.labels.Float(label)
	if err != nil {
		return err
	}
	for i, v := range col {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return zorros.Errorf("can not renormalize row %d by `%v` = %v", i, label, v)
		}
	}
	for i, v := range col {
		row := l.flux.RawRowView(i)
		for j := range row {
			row[j] /= v
		}
	}
	l.version++
	return nil
}
