package stats

import (
	"math"

	"github.com/zintix-labs/prnglab/errs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// UniformCDF 為 [0,1) 均勻分布的 CDF（區間外夾到 0 / 1）。
func UniformCDF(x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	}
	return x
}

// UniformIntCDF 回傳 [lo,hi) 整數均勻分布的 CDF：(x-lo)/(hi-lo)。
func UniformIntCDF(lo, hi float64) func(float64) float64 {
	span := hi - lo
	return func(x float64) float64 {
		if x <= lo {
			return 0
		}
		if x >= hi {
			return 1
		}
		return (x - lo) / span
	}
}

// NormalCDF 回傳 Normal(mean, stdDev) 的 CDF。
func NormalCDF(mean, stdDev float64) func(float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: stdDev}.CDF
}

// Summary 為樣本的基本描述統計。
type Summary struct {
	N      int     `json:"n" yaml:"n"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Describe 回傳樣本數、平均、（無偏）標準差與極值。
func Describe(samples []float64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, errs.EmptySamplef("describe: no samples")
	}
	mean, std := stat.MeanStdDev(samples, nil)
	if len(samples) == 1 || math.IsNaN(std) {
		std = 0
	}
	return Summary{
		N:      len(samples),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(samples),
		Max:    floats.Max(samples),
	}, nil
}
