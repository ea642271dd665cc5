package model

import (
	"encoding/gob"
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/psi/model/features"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
	"io"
)

type snapshot struct {
	Features    []string
	Center      map[string]float64
	Reference   []float64
	LogFlux     bool
	Wavelengths []float64
	Rows, Cols  int
	Coeffs      []float64
}

/*
Memorize writes the fit as a xz compressed gob snapshot
*/
func (f *Fitted) Memorize(w io.Writer) error {
	r, c := f.coeffs.Dims()
	s := snapshot{
		Features:    f.Features(),
		Center:      f.Center(),
		Reference:   f.reference,
		LogFlux:     f.logFlux,
		Wavelengths: f.wave,
		Rows:        r,
		Cols:        c,
		Coeffs:      mat.DenseCopyOf(f.coeffs).RawMatrix().Data,
	}
	xw, err := xz.NewWriter(w)
	if err != nil {
		return zorros.Trace(err)
	}
	if err = gob.NewEncoder(xw).Encode(&s); err != nil {
		xw.Close()
		return zorros.Wrapf(err, "failed to encode model: %v", err.Error())
	}
	if err = xw.Close(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

/*
MemorizeTo writes the snapshot to an output, the output is committed only
when the whole snapshot is written
*/
func (f *Fitted) MemorizeTo(o iokit.Output) (err error) {
	wh, err := o.Create()
	if err != nil {
		return zorros.Wrapf(err, "failed to create model file: %v", err.Error())
	}
	defer wh.End()
	if err = f.Memorize(wh); err != nil {
		return
	}
	if err = wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return
}

/*
RestoreFrom reads a fit written by MemorizeTo
*/
func RestoreFrom(i iokit.Input) (*Fitted, error) {
	rd, err := i.Open()
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open model file: %v", err.Error())
	}
	defer rd.Close()
	return Restore(rd)
}

/*
Restore reads a fit written by Memorize
*/
func Restore(r io.Reader) (*Fitted, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	var s snapshot
	if err = gob.NewDecoder(xr).Decode(&s); err != nil {
		return nil, zorros.Wrapf(err, "failed to decode model: %v", err.Error())
	}
	terms, err := features.ParseSet(s.Features...)
	if err != nil {
		return nil, err
	}
	if s.Rows != len(s.Wavelengths) || s.Cols != terms.Width() || len(s.Coeffs) != s.Rows*s.Cols {
		return nil, zorros.Errorf("inconsistent model snapshot")
	}
	if s.Reference != nil && len(s.Reference) != s.Rows {
		return nil, zorros.Errorf("inconsistent model snapshot reference")
	}
	return &Fitted{
		terms:     terms,
		center:    features.Center(s.Center),
		reference: s.Reference,
		logFlux:   s.LogFlux,
		wave:      s.Wavelengths,
		coeffs:    mat.NewDense(s.Rows, s.Cols, s.Coeffs),
	}, nil
}
