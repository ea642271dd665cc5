package model

import (
	"go-ml.dev/pkg/psi/library"
	"go-ml.dev/pkg/zorros"
)

/*
PredictionModel is a predictor interface
*/
type PredictionModel interface {
	// Features model uses when builds a design vector,
	// in the order of coefficient columns after the bias
	Features() []string
	// Wavelengths of predicted spectra
	Wavelengths() []float64
	// Predict returns the spectrum at record labels
	Predict(library.Record) ([]float64, error)
}

/*
TrainableModel is a model retrained from the current training rows of its library
*/
type TrainableModel interface {
	PredictionModel
	Train() error
	InsideHull(r library.Record, dims []string) (bool, error)
}

/*
LuckyTrain trains a model and trows any occurred errors as a panic
*/
func LuckyTrain(m TrainableModel) {
	if err := m.Train(); err != nil {
		panic(zorros.Panic(err))
	}
}

/*
LuckyPredict predicts a spectrum and trows any occurred errors as a panic
*/
func LuckyPredict(m PredictionModel, r library.Record) []float64 {
	y, err := m.Predict(r)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return y
}
