package engine

import (
	"math"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
)

// DisplayPrecision 為 Gaussian 輸出四捨五入的小數位數。
const DisplayPrecision = 2

// Gaussian 以 Box-Muller 轉換產生近似 Normal(mean, stdDev) 的樣本：
//
//	z0 = sqrt(-2 ln u1) * cos(2π u2)
//
// u1 == 0 時重抽，避免 ln(0)。輸出四捨五入到 DisplayPrecision 位小數。
type Gaussian struct {
	name   string
	mean   float64
	stdDev float64
	src    core.RAND
}

// NewGaussian 建立 Gaussian，src 為均勻來源。
func NewGaussian(name string, mean, stdDev float64, src core.RAND) (*Gaussian, error) {
	if err := checkNormal(name, mean, stdDev, src); err != nil {
		return nil, err
	}
	return &Gaussian{name: name, mean: mean, stdDev: stdDev, src: src}, nil
}

func checkNormal(name string, mean, stdDev float64, src core.RAND) error {
	if src == nil {
		return errs.InvalidArgumentf("%s: nil uniform source", name)
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return errs.InvalidArgumentf("%s: mean %v is not finite", name, mean)
	}
	if math.IsNaN(stdDev) || math.IsInf(stdDev, 0) || stdDev < 0 {
		return errs.InvalidArgumentf("%s: std dev %v must be finite and >= 0", name, stdDev)
	}
	return nil
}

func (g *Gaussian) Name() string    { return g.name }
func (g *Gaussian) Kind() Kind      { return KindGaussian }
func (g *Gaussian) Mean() float64   { return g.mean }
func (g *Gaussian) StdDev() float64 { return g.stdDev }

func (g *Gaussian) Next() float64 {
	var u1, u2 float64
	for {
		u1 = g.src.Float64()
		u2 = g.src.Float64()
		if u1 != 0 {
			break
		}
	}
	z0 := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return roundTo(g.mean+g.stdDev*z0, DisplayPrecision)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// Polar 以 Marsaglia polar method 產生常態樣本，每輪產出兩個值並快取一個。
// fold 為 true 時回傳 |x|（圖表資料不需要負值）。
type Polar struct {
	name     string
	mean     float64
	stdDev   float64
	fold     bool
	src      core.RAND
	spare    float64
	hasSpare bool
}

// NewPolar 建立 Polar。
func NewPolar(name string, mean, stdDev float64, fold bool, src core.RAND) (*Polar, error) {
	if err := checkNormal(name, mean, stdDev, src); err != nil {
		return nil, err
	}
	return &Polar{name: name, mean: mean, stdDev: stdDev, fold: fold, src: src}, nil
}

func (g *Polar) Name() string { return g.name }
func (g *Polar) Kind() Kind   { return KindPolar }

func (g *Polar) Next() float64 {
	var y float64
	if g.hasSpare {
		y = g.spare
		g.hasSpare = false
	} else {
		var x1, x2, w float64
		for {
			x1 = 2*g.src.Float64() - 1
			x2 = 2*g.src.Float64() - 1
			w = x1*x1 + x2*x2
			if w < 1 && w != 0 {
				break
			}
		}
		w = math.Sqrt(-2 * math.Log(w) / w)
		y = x1 * w
		g.spare = x2 * w
		g.hasSpare = true
	}
	v := g.mean + g.stdDev*y
	if g.fold && v < 0 {
		return -v
	}
	return v
}
