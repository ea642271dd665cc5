package fu

import (
	"gonum.org/v1/gonum/stat"
	"math"
	"sort"
)

func Mean(a []float64) float64 {
	var c float64
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

func Flatn(a [][]float64) []float64 {
	n := 0
	for _, x := range a {
		n += len(x)
	}
	r := make([]float64, n)
	i := 0
	for _, x := range a {
		copy(r[i:i+len(x)], x)
		i += len(x)
	}
	return r
}

/*
Finite returns a copy of a without NaN and Inf values
*/
func Finite(a []float64) []float64 {
	r := make([]float64, 0, len(a))
	for _, x := range a {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			r = append(r, x)
		}
	}
	return r
}

/*
NanMean is the mean of finite values, NaN if there are none
*/
func NanMean(a []float64) float64 {
	f := Finite(a)
	if len(f) == 0 {
		return math.NaN()
	}
	return Mean(f)
}

/*
NanVar is the population variance of finite values, NaN if there are none
*/
func NanVar(a []float64) float64 {
	f := Finite(a)
	if len(f) == 0 {
		return math.NaN()
	}
	_, v := stat.PopMeanVariance(f, nil)
	return v
}

/*
NanMedian is the median of finite values, NaN if there are none.
For an even count it is the mean of two middle values.
*/
func NanMedian(a []float64) float64 {
	f := Finite(a)
	if len(f) == 0 {
		return math.NaN()
	}
	sort.Float64s(f)
	n := len(f)
	if n%2 == 1 {
		return f[n/2]
	}
	return (f[n/2-1] + f[n/2]) / 2
}

// Fnzi returns the first non-zero value
func Fnzi(a ...int) int {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

func Mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
