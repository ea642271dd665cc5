package model

import (
	"fmt"
	"go-ml.dev/pkg/psi/fu"
	"go-ml.dev/pkg/psi/library"
	"go-ml.dev/pkg/psi/model/features"
	"go-ml.dev/pkg/psi/model/weights"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"math"
	"runtime"
)

/*
Train fits coefficients of every channel to the current training rows.
On failure the previous fit is dropped.
*/
func (m *Model) Train() error {
	m.fit = nil
	view := m.lib.Training()
	n, k := view.Len(), m.features.Width()
	if n < k {
		return &RankDeficientError{Rows: n, Cols: k, Channel: -1}
	}
	labels := view.Labels()
	center, err := m.center(labels)
	if err != nil {
		return err
	}
	x, err := features.DesignMatrix(m.features, labels, center)
	if err != nil {
		return err
	}
	flux := view.Flux()
	var ref []float64
	if m.options.Reference == StdReference {
		ref = stdReference(flux)
	}
	y := targets(flux, ref, m.options.LogFlux)

	policy := weights.Policy{
		Unweighted: m.options.Unweighted,
		LogFlux:    m.options.LogFlux,
		FlagWeight: m.options.FlagWeight,
	}
	wt := policy.Bind(view.SNR(), m.flagged(labels))

	_, nw := flux.Dims()
	coeffs := mat.NewDense(nw, k, nil)
	if wt.Unweighted() {
		err = solveAll(x, y, coeffs)
	} else {
		err = m.solveEach(x, y, wt, coeffs)
	}
	if err != nil {
		return err
	}

	m.fit = &Fitted{
		terms:     m.FeatureSet(),
		center:    center,
		reference: ref,
		logFlux:   m.options.LogFlux,
		wave:      m.lib.Wavelengths(),
		coeffs:    coeffs,
	}
	m.version = m.lib.Version()
	m.options.verbose(fmt.Sprintf("trained %d channels on %d rows, %d coefficients, weighted: %v",
		nw, n, k, !wt.Unweighted()))
	return nil
}

func (m *Model) center(labels *library.Table) (features.Center, error) {
	switch m.options.Centering {
	case SolarCentering:
		return features.Solar().Restrict(m.features), nil
	case MeanCentering:
		return features.Mean(m.features, labels)
	case CustomCentering:
		return m.options.Center.Restrict(m.features), nil
	}
	return features.Center{}, nil
}

func (m *Model) flagged(labels *library.Table) []bool {
	col, err := labels.Strings(m.options.FlagLabel)
	if err != nil || m.options.FlagLabel == "" {
		return nil
	}
	f := make([]bool, len(col))
	for i, v := range col {
		f[i] = v == m.options.FlagValue
	}
	return f
}

// stdReference is the population standard deviation of every channel, zero replaced by 1
func stdReference(flux *mat.Dense) []float64 {
	n, w := flux.Dims()
	ref := make([]float64, w)
	col := make([]float64, n)
	for j := range ref {
		mat.Col(col, j, flux)
		_, v := stat.PopMeanVariance(col, nil)
		ref[j] = math.Sqrt(v)
		if ref[j] == 0 || math.IsNaN(ref[j]) {
			ref[j] = 1
		}
	}
	return ref
}

func targets(flux *mat.Dense, ref []float64, logFlux bool) *mat.Dense {
	y := mat.DenseCopyOf(flux)
	n, _ := y.Dims()
	for i := 0; i < n; i++ {
		row := y.RawRowView(i)
		for j := range row {
			if ref != nil {
				row[j] /= ref[j]
			}
			if logFlux {
				row[j] = math.Log(row[j])
			}
		}
	}
	return y
}

/*
solveAll solves ordinary least squares of every channel with a single
factorization of the design matrix
*/
func solveAll(x, y, coeffs *mat.Dense) error {
	n, k := x.Dims()
	var qr mat.QR
	qr.Factorize(x)
	var c mat.Dense
	if err := qr.SolveTo(&c, false, y); err != nil {
		return &RankDeficientError{Rows: n, Cols: k, Channel: -1}
	}
	coeffs.Copy(c.T())
	return nil
}

func (m *Model) solveEach(x, y *mat.Dense, wt *weights.Weighter, coeffs *mat.Dense) error {
	nw, _ := coeffs.Dims()
	errs := make([]error, nw)
	channel := func(j int, buf []float64) []float64 {
		yj := mat.Col(nil, j, y)
		buf = wt.Weights(j, yj, buf)
		beta, err := solveWeighted(x, yj, buf)
		if err != nil {
			if rd, ok := err.(*RankDeficientError); ok {
				rd.Channel = j
			}
			errs[j] = err
			return buf
		}
		coeffs.SetRow(j, beta)
		return buf
	}

	if !m.options.Parallel {
		var buf []float64
		for j := 0; j < nw; j++ {
			if buf = channel(j, buf); errs[j] != nil {
				return errs[j]
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(m.workers(nw))
	for j := 0; j < nw; j++ {
		j := j
		g.Go(func() error {
			channel(j, nil)
			return errs[j]
		})
	}
	if g.Wait() == nil {
		return nil
	}
	// the lowest failing channel, not the first one to finish
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) workers(channels int) int {
	return fu.Mini(fu.Maxi(fu.Fnzi(m.options.Workers, runtime.GOMAXPROCS(0)), 1), channels)
}

/*
solveWeighted solves the weighted least squares of one channel as the ordinary
least squares of rows scaled by square roots of weights, rows of zero weight
are dropped
*/
func solveWeighted(x *mat.Dense, y, w []float64) ([]float64, error) {
	_, k := x.Dims()
	rows := 0
	for _, v := range w {
		if v > 0 {
			rows++
		}
	}
	if rows < k {
		return nil, &RankDeficientError{Rows: rows, Cols: k}
	}
	a := mat.NewDense(rows, k, nil)
	b := mat.NewVecDense(rows, nil)
	r := 0
	for i, v := range w {
		if v <= 0 {
			continue
		}
		s := math.Sqrt(v)
		dst, src := a.RawRowView(r), x.RawRowView(i)
		for c := range dst {
			dst[c] = src[c] * s
		}
		b.SetVec(r, y[i]*s)
		r++
	}
	var qr mat.QR
	qr.Factorize(a)
	beta := mat.NewVecDense(k, nil)
	if err := qr.SolveVecTo(beta, false, b); err != nil {
		return nil, &RankDeficientError{Rows: rows, Cols: k}
	}
	return beta.RawVector().Data, nil
}
