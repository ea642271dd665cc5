package loo

import (
	"go-ml.dev/pkg/psi/fu"
	"math"
)

/*
Window is a wavelength range (Min, Max) with excluded bands, e.g. telluric
absorption. A zero Window covers every channel.
*/
type Window struct {
	Min, Max float64
	Exclude  [][2]float64
}

func (w Window) contains(l float64) bool {
	if w.Min != 0 || w.Max != 0 {
		if !(l > w.Min && l < w.Max) {
			return false
		}
	}
	for _, b := range w.Exclude {
		if l > b[0] && l < b[1] {
			return false
		}
	}
	return true
}

func (w Window) channels(wave []float64) []int {
	var r []int
	for j, l := range wave {
		if w.contains(l) {
			r = append(r, j)
		}
	}
	return r
}

/*
Delta returns fractional residuals predicted/observed - 1 of every row
*/
func (r *Report) Delta() [][]float64 {
	d := make([][]float64, len(r.Predicted))
	for i, p := range r.Predicted {
		d[i] = make([]float64, len(p))
		for j, v := range p {
			d[i][j] = v/r.Observed[i][j] - 1
		}
	}
	return d
}

func (r *Report) column(d [][]float64, j int) []float64 {
	c := make([]float64, len(d))
	for i := range d {
		c[i] = d[i][j]
	}
	return c
}

/*
Dispersion returns the standard deviation of fractional residuals over rows
at every channel, non-finite residuals ignored
*/
func (r *Report) Dispersion() []float64 {
	d := r.Delta()
	s := make([]float64, len(r.Wavelengths))
	for j := range s {
		s[j] = math.Sqrt(fu.NanVar(r.column(d, j)))
	}
	return s
}

/*
Scatter is the standard deviation of fractional residuals of all rows at all
channels together
*/
func (r *Report) Scatter() float64 {
	return math.Sqrt(fu.NanVar(fu.Flatn(r.Delta())))
}

/*
Bias returns the mean fractional residual over rows at every channel
*/
func (r *Report) Bias() []float64 {
	d := r.Delta()
	s := make([]float64, len(r.Wavelengths))
	for j := range s {
		s[j] = fu.NanMean(r.column(d, j))
	}
	return s
}

/*
StarVariance returns the variance of fractional residuals of every row over
the channels of window
*/
func (r *Report) StarVariance(w Window) []float64 {
	ch := w.channels(r.Wavelengths)
	d := r.Delta()
	v := make([]float64, len(d))
	q := make([]float64, len(ch))
	for i := range d {
		for k, j := range ch {
			q[k] = d[i][j]
		}
		v[i] = fu.NanVar(q)
	}
	return v
}

/*
ChiSquare returns Σ (snr·delta)² of every row over the channels of window
assuming a uniform signal-to-noise ratio
*/
func (r *Report) ChiSquare(snr float64, w Window) []float64 {
	ch := w.channels(r.Wavelengths)
	d := r.Delta()
	c := make([]float64, len(d))
	for i := range d {
		for _, j := range ch {
			x := snr * d[i][j]
			if !math.IsNaN(x) && !math.IsInf(x, 0) {
				c[i] += x * x
			}
		}
	}
	return c
}

/*
InHullFraction is the fraction of rows left out that were inside the hull
*/
func (r *Report) InHullFraction() float64 {
	if len(r.InHull) == 0 {
		return math.NaN()
	}
	n := 0
	for _, h := range r.InHull {
		if h {
			n++
		}
	}
	return float64(n) / float64(len(r.InHull))
}
