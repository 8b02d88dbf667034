// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stats 提供生成器輸出的統計驗證：Kolmogorov–Smirnov、卡方與 Shannon 熵。
//
// 所有驗證函數只讀取輸入序列，需要排序時一律複製一份，不修改呼叫端的 slice。
package stats

import (
	"math"
	"math/big"
	"slices"

	"github.com/zintix-labs/prnglab/errs"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// KSCoefficient 為 KS 臨界值 c/√n 的常數。
const KSCoefficient = 1.63

// Result 為單次檢定結果，不持久化。
type Result struct {
	Statistic float64 `json:"statistic" yaml:"statistic"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Passed    bool    `json:"passed" yaml:"passed"`
}

// ============================================================
// ** Kolmogorov–Smirnov **
// ============================================================

// KSCritical 回傳樣本數 n 的 KS 臨界值 1.63/√n。
func KSCritical(n int) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return KSCoefficient / math.Sqrt(float64(n))
}

// KolmogorovSmirnov 比較樣本的經驗 CDF 與理論 CDF：
//
//	D = max_i |i/n - cdf(x_(i))|   (i 由 1 起算)
//
// D <= 1.63/√n 視為通過。
func KolmogorovSmirnov(samples []float64, cdf func(float64) float64) (Result, error) {
	n := len(samples)
	if n == 0 {
		return Result{}, errs.EmptySamplef("kolmogorov-smirnov: no samples")
	}
	if cdf == nil {
		return Result{}, errs.InvalidArgumentf("kolmogorov-smirnov: nil cdf")
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	d := 0.0
	fn := float64(n)
	for i, x := range sorted {
		if math.IsNaN(x) {
			return Result{}, errs.InvalidArgumentf("kolmogorov-smirnov: NaN sample at rank %d", i+1)
		}
		if diff := math.Abs(float64(i+1)/fn - cdf(x)); diff > d {
			d = diff
		}
	}
	th := KSCritical(n)
	return Result{Statistic: d, Threshold: th, Passed: d <= th}, nil
}

// ============================================================
// ** Chi-squared **
// ============================================================

// ChiSquaredBig 對大整數序列做等寬分箱的卡方統計：
//   - binSize = (max - min + 1) / numBins（整數除法，至少為 1）
//   - expected = n / numBins（整數除法）
//   - chi = Σ (o - e)² · e / e²，逐項以整數運算
//
// 區間無法整除時，超出最後一箱的值併入最後一箱。
func ChiSquaredBig(seq []*big.Int, numBins int) (*big.Int, error) {
	n := len(seq)
	if n == 0 {
		return nil, errs.EmptySamplef("chi-squared: no samples")
	}
	if numBins < 1 {
		return nil, errs.InvalidArgumentf("chi-squared: numBins %d < 1", numBins)
	}
	expected := int64(n / numBins)
	if expected == 0 {
		return nil, errs.InvalidArgumentf("chi-squared: numBins %d exceeds sample size %d", numBins, n)
	}
	for i, v := range seq {
		if v == nil {
			return nil, errs.InvalidArgumentf("chi-squared: nil sample at index %d", i)
		}
	}

	sorted := slices.Clone(seq)
	slices.SortFunc(sorted, (*big.Int).Cmp)
	lo, hi := sorted[0], sorted[n-1]

	binSize := new(big.Int).Sub(hi, lo)
	binSize.Add(binSize, big.NewInt(1))
	binSize.Quo(binSize, big.NewInt(int64(numBins)))
	if binSize.Sign() == 0 {
		binSize.SetInt64(1)
	}

	observed := make([]int64, numBins)
	last := big.NewInt(int64(numBins - 1))
	idx := new(big.Int)
	for _, v := range sorted {
		idx.Sub(v, lo)
		idx.Quo(idx, binSize)
		if idx.Cmp(last) > 0 {
			idx.Set(last)
		}
		observed[idx.Int64()]++
	}

	e := big.NewInt(expected)
	e2 := new(big.Int).Mul(e, e)
	chi := new(big.Int)
	term := new(big.Int)
	for _, o := range observed {
		term.SetInt64(o - expected)
		term.Mul(term, term)
		term.Mul(term, e)
		term.Quo(term, e2)
		chi.Add(chi, term)
	}
	return chi, nil
}

// ToBig 將樣本轉成大整數供 ChiSquaredBig 使用：scale 為 true 時先將 [0,1) 值放大到 32-bit 整數，
// 否則樣本本身必須為整數。
func ToBig(xs []float64, scale bool) ([]*big.Int, error) {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		if scale {
			x = math.Floor(x * (1 << 32))
		}
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return nil, errs.InvalidArgumentf("chi-squared needs integer samples, got %v at %d (try view: uniform)", x, i)
		}
		v, _ := new(big.Float).SetFloat64(x).Int(nil)
		out[i] = v
	}
	return out, nil
}

// ChiSquaredCritical 回傳自由度 bins-1、顯著水準 alpha 的卡方臨界值。
func ChiSquaredCritical(bins int, alpha float64) float64 {
	if bins < 2 || !(alpha > 0 && alpha < 1) {
		return math.NaN()
	}
	return distuv.ChiSquared{K: float64(bins - 1)}.Quantile(1 - alpha)
}

// ChiSquaredTest 計算 ChiSquaredBig 並與 ChiSquaredCritical(numBins, alpha) 比較。
func ChiSquaredTest(seq []*big.Int, numBins int, alpha float64) (Result, error) {
	if numBins < 2 {
		return Result{}, errs.InvalidArgumentf("chi-squared test: numBins %d < 2", numBins)
	}
	if !(alpha > 0 && alpha < 1) {
		return Result{}, errs.InvalidArgumentf("chi-squared test: alpha %v not in (0,1)", alpha)
	}
	chi, err := ChiSquaredBig(seq, numBins)
	if err != nil {
		return Result{}, err
	}
	s, _ := new(big.Float).SetInt(chi).Float64()
	th := ChiSquaredCritical(numBins, alpha)
	return Result{Statistic: s, Threshold: th, Passed: s < th}, nil
}

// DefaultBins 回傳 round(√n)，至少 2。
func DefaultBins(n int) int {
	return max(2, int(math.Round(math.Sqrt(float64(n)))))
}

// ============================================================
// ** Entropy **
// ============================================================

// Entropy 回傳以 bit 為單位的 Shannon 熵 -Σ p_i log2(p_i)，p_i 為各相異值的頻率。
//
// 連續值輸入量到的是離散樣本的多樣性，不是微分熵；需要類比精度時請先自行分箱（見 Discretize）。
func Entropy[T comparable](data []T) (float64, error) {
	if len(data) == 0 {
		return 0, errs.EmptySamplef("entropy: no samples")
	}
	counts := make(map[T]int, len(data))
	for _, v := range data {
		counts[v]++
	}
	return entropyOf(counts, len(data)), nil
}

// EntropyBig 與 Entropy 相同，以大整數的值作為分類鍵。
func EntropyBig(seq []*big.Int) (float64, error) {
	if len(seq) == 0 {
		return 0, errs.EmptySamplef("entropy: no samples")
	}
	counts := make(map[string]int, len(seq))
	for i, v := range seq {
		if v == nil {
			return 0, errs.InvalidArgumentf("entropy: nil sample at index %d", i)
		}
		counts[v.Text(16)]++
	}
	return entropyOf(counts, len(seq)), nil
}

// NormalizedEntropy 回傳 H / log2(n)，n 為樣本數；全相異時為 1，常數序列為 0。
func NormalizedEntropy[T comparable](data []T) (float64, error) {
	h, err := Entropy(data)
	if err != nil {
		return 0, err
	}
	if len(data) < 2 {
		return 0, nil
	}
	return h / math.Log2(float64(len(data))), nil
}

func entropyOf[K comparable](counts map[K]int, n int) float64 {
	p := make([]float64, 0, len(counts))
	fn := float64(n)
	for _, c := range counts {
		p = append(p, float64(c)/fn)
	}
	// gonum 以自然對數計算
	return stat.Entropy(p) / math.Ln2
}

// Discretize 將 [lo, hi) 等分成 bins 箱並回傳每個樣本的箱號；範圍外的值夾到兩端。
func Discretize(samples []float64, lo, hi float64, bins int) ([]int, error) {
	if bins < 1 || !(hi > lo) {
		return nil, errs.InvalidArgumentf("discretize: invalid range [%v,%v) with %d bins", lo, hi, bins)
	}
	out := make([]int, len(samples))
	w := (hi - lo) / float64(bins)
	for i, x := range samples {
		b := int(math.Floor((x - lo) / w))
		out[i] = min(max(b, 0), bins-1)
	}
	return out, nil
}
