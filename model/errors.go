package model

import (
	"fmt"
	"golang.org/x/xerrors"
)

// ErrNotTrained is returned by prediction before the first successful Train
var ErrNotTrained = xerrors.New("model: not trained")

// ErrDegenerateHull is returned when training labels do not span the hull dimensions
var ErrDegenerateHull = xerrors.New("model: training labels do not span hull dimensions")

/*
RankDeficientError is returned by Train when the training rows can not
determine every coefficient. Channel is -1 when no channel can be solved, either for lack of rows
or because the design matrix itself is collinear.
*/
type RankDeficientError struct {
	Rows    int
	Cols    int
	Channel int
}

func (e *RankDeficientError) Error() string {
	if e.Channel < 0 && e.Rows < e.Cols {
		return fmt.Sprintf("model: %d training rows can not fit %d coefficients", e.Rows, e.Cols)
	}
	if e.Channel < 0 {
		return fmt.Sprintf("model: design matrix of %d rows is rank deficient for %d coefficients", e.Rows, e.Cols)
	}
	return fmt.Sprintf("model: design matrix is rank deficient at channel %d, %d weighted rows for %d coefficients",
		e.Channel, e.Rows, e.Cols)
}
