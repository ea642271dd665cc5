/*
Package weights computes per-channel regression weights of training spectra
from their signal-to-noise ratio
*/
package weights

import (
	"go-ml.dev/pkg/psi/fu"
	"gonum.org/v1/gonum/mat"
	"math"
)

const (
	DefaultSNRThreshold = 1e-10
	DefaultFlagWeight   = 0.1
	DefaultFlagLabel    = "miles_id"
	DefaultFlagValue    = "c3k"
)

/*
Sanitize zeroes the SNR of pixels whose SNR is below threshold or not finite
and replaces their flux by the median of the whole flux matrix. Without snr
only non-finite flux values are replaced. It returns the replacement value
and the count of replaced pixels.
*/
func Sanitize(flux, snr *mat.Dense, threshold float64) (sentinel float64, bad int) {
	n, w := flux.Dims()
	all := make([]float64, 0, n*w)
	for i := 0; i < n; i++ {
		all = append(all, flux.RawRowView(i)...)
	}
	sentinel = fu.NanMedian(all)
	for i := 0; i < n; i++ {
		f := flux.RawRowView(i)
		var s []float64
		if snr != nil {
			s = snr.RawRowView(i)
		}
		for j := range f {
			if s != nil {
				if s[j] < threshold || math.IsNaN(s[j]) || math.IsInf(s[j], 0) {
					s[j] = 0
					f[j] = sentinel
					bad++
				}
			} else if math.IsNaN(f[j]) || math.IsInf(f[j], 0) {
				f[j] = sentinel
				bad++
			}
		}
	}
	return
}

/*
Policy decides how training rows are weighted.
Flagged rows (a synthetic sub-population) are given FlagWeight times the
median weight of the other rows at every channel.
*/
type Policy struct {
	Unweighted bool    // ordinary least squares
	LogFlux    bool    // targets are log-flux, SNR² is used as is
	FlagWeight float64 // relative weight of flagged rows
}

/*
Weighter is a policy bound to the SNR of a training set
*/
type Weighter struct {
	Policy
	snr     *mat.Dense
	flagged []bool
	nflag   int
}

/*
Bind binds policy to training SNR (rows are training rows). A nil snr means
the library has no uncertainties and any weighting degrades to unweighted.
*/
func (p Policy) Bind(snr *mat.Dense, flagged []bool) *Weighter {
	w := &Weighter{Policy: p, snr: snr, flagged: flagged}
	for _, f := range flagged {
		if f {
			w.nflag++
		}
	}
	return w
}

// Unweighted reports whether Weights always returns nil
func (w *Weighter) Unweighted() bool {
	return w.Policy.Unweighted || w.snr == nil
}

/*
Weights returns weights of every training row at channel j, or nil meaning
unweighted. target is the training target at channel j in fitting units.
dst is reused when it has enough capacity.
*/
func (w *Weighter) Weights(j int, target []float64, dst []float64) []float64 {
	if w.Unweighted() {
		return nil
	}
	n, _ := w.snr.Dims()
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := 0; i < n; i++ {
		s := w.snr.At(i, j)
		if w.LogFlux {
			dst[i] = s * s
		} else {
			q := s / target[i]
			dst[i] = q * q
		}
		if math.IsNaN(dst[i]) || math.IsInf(dst[i], 0) {
			dst[i] = 0
		}
	}
	if w.nflag > 0 {
		rest := make([]float64, 0, n-w.nflag)
		for i, f := range w.flagged {
			if !f {
				rest = append(rest, dst[i])
			}
		}
		m := fu.NanMedian(rest)
		if m == 0 || math.IsNaN(m) {
			m = 1
		}
		for i, f := range w.flagged {
			if f {
				dst[i] = m * w.FlagWeight
			}
		}
	}
	return dst
}
