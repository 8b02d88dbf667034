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

package stats_test

import (
	"errors"
	"math"
	"math/big"
	"slices"
	"testing"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
	"github.com/zintix-labs/prnglab/sdk/engine"
	"github.com/zintix-labs/prnglab/stats"
)

const numSamples = 1000

func uniformSamples(seed int64, n int) []float64 {
	r := core.NewPCG64WithSeed(seed)
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Float64()
	}
	return out
}

// mostlyPass 以多個 seed 重複檢定，容許至多一次偶發失敗（單次約 1% 誤判率）。
func mostlyPass(t *testing.T, name string, run func(seed int64) stats.Result) {
	t.Helper()
	fails := 0
	for seed := int64(1); seed <= 5; seed++ {
		if r := run(seed); !r.Passed {
			fails++
			t.Logf("%s seed=%d failed: %+v", name, seed, r)
		}
	}
	if fails > 1 {
		t.Fatalf("%s failed %d/5 times", name, fails)
	}
}

func TestKSUniformPasses(t *testing.T) {
	mostlyPass(t, "ks uniform", func(seed int64) stats.Result {
		r, err := stats.KolmogorovSmirnov(uniformSamples(seed, numSamples), stats.UniformCDF)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return r
	})
}

func TestKSNormalAgainstUniformFails(t *testing.T) {
	g, _ := engine.NewGaussian("n01", 0, 1, core.NewPCG64WithSeed(9))
	samples := make([]float64, numSamples)
	for i := range samples {
		samples[i] = g.Next()
	}
	r, err := stats.KolmogorovSmirnov(samples, stats.UniformCDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Passed {
		t.Fatalf("normal samples must not pass against the uniform cdf: %+v", r)
	}
}

func TestKSGaussianAgainstNormalPasses(t *testing.T) {
	mostlyPass(t, "ks normal", func(seed int64) stats.Result {
		g, _ := engine.NewGaussian("random", 50, 15, core.NewPCG64WithSeed(seed))
		samples := make([]float64, numSamples)
		for i := range samples {
			samples[i] = g.Next()
		}
		r, err := stats.KolmogorovSmirnov(samples, stats.NormalCDF(50, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return r
	})
}

func TestKSExactAndNoMutation(t *testing.T) {
	in := []float64{0.9, 0.1, 0.5}
	r, err := stats.KolmogorovSmirnov(in, stats.UniformCDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r.Statistic-(1.0/3-0.1)) > 1e-12 {
		t.Fatalf("D = %v", r.Statistic)
	}
	if math.Abs(r.Threshold-1.63/math.Sqrt(3)) > 1e-12 {
		t.Fatalf("threshold = %v", r.Threshold)
	}
	if !slices.Equal(in, []float64{0.9, 0.1, 0.5}) {
		t.Fatalf("input was mutated: %v", in)
	}
	if _, err := stats.KolmogorovSmirnov(nil, stats.UniformCDF); !errors.Is(err, errs.ErrEmptySample) {
		t.Fatalf("empty sample should fail, got %v", err)
	}
}

func bigs(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

func TestChiSquaredBigExact(t *testing.T) {
	seq := make([]*big.Int, 1000)
	for i := range seq {
		seq[999-i] = big.NewInt(int64(i))
	}
	chi, err := stats.ChiSquaredBig(seq, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chi.Sign() != 0 {
		t.Fatalf("perfectly uniform sequence should give 0, got %s", chi)
	}
	if seq[0].Int64() != 999 {
		t.Fatalf("input was mutated")
	}

	// observed [6,2], expected 4 : 4*4/16 + 4*4/16 = 2
	chi, _ = stats.ChiSquaredBig(bigs(0, 0, 0, 0, 0, 0, 1, 1), 2)
	if chi.Int64() != 2 {
		t.Fatalf("chi = %s want 2", chi)
	}

	// 每項先整數除法：observed [3,1], expected 2 -> 1*2/4 = 0 兩次
	chi, _ = stats.ChiSquaredBig(bigs(0, 0, 0, 1), 2)
	if chi.Int64() != 0 {
		t.Fatalf("chi = %s want 0", chi)
	}

	// 1005 個值、10 箱：binSize = 100，1000..1004 併入最後一箱
	seq = seq[:0]
	for i := int64(0); i < 1005; i++ {
		seq = append(seq, big.NewInt(i))
	}
	if _, err := stats.ChiSquaredBig(seq, 10); err != nil {
		t.Fatalf("overflow values must be clamped, got %v", err)
	}
}

func TestChiSquaredBigErrors(t *testing.T) {
	if _, err := stats.ChiSquaredBig(nil, 10); !errors.Is(err, errs.ErrEmptySample) {
		t.Fatalf("empty sequence should be EmptySample, got %v", err)
	}
	if _, err := stats.ChiSquaredBig(bigs(1, 2), 0); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("zero bins should fail, got %v", err)
	}
	if _, err := stats.ChiSquaredBig(bigs(1, 2), 3); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("more bins than samples should fail, got %v", err)
	}
	if _, err := stats.ChiSquaredBig([]*big.Int{big.NewInt(1), nil}, 1); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("nil sample should fail, got %v", err)
	}
}

func TestChiSquaredBigRandomBelow50(t *testing.T) {
	safe := big.NewInt(core.MaxSafeInteger)
	ranges := [][2]*big.Int{
		{new(big.Int).Set(safe), new(big.Int).Mul(safe, big.NewInt(2))},
		{big.NewInt(0), new(big.Int).Mul(safe, big.NewInt(2))},
	}
	for i, rg := range ranges {
		c := core.New(core.NewPCG64WithSeed(int64(100 + i)))
		seq := make([]*big.Int, numSamples)
		for j := range seq {
			v, err := c.BigRange(rg[0], rg[1])
			if err != nil {
				t.Fatalf("BigRange: %v", err)
			}
			seq[j] = v
		}
		bins := stats.DefaultBins(len(seq))
		if bins != 32 {
			t.Fatalf("DefaultBins(1000) = %d", bins)
		}
		chi, err := stats.ChiSquaredBig(seq, bins)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if chi.Cmp(big.NewInt(50)) >= 0 {
			t.Fatalf("range %d: chi-square %s exceeds 50", i, chi)
		}
	}
}

func TestChiSquaredTest(t *testing.T) {
	mt := engine.NewMT19937("mt", 20251014)
	seq := make([]*big.Int, numSamples)
	for i := range seq {
		seq[i] = new(big.Int).SetUint64(mt.NextUint64())
	}
	r, err := stats.ChiSquaredTest(seq, 32, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Passed {
		t.Fatalf("mt19937 should pass: %+v", r)
	}

	// 900 個值擠在最低的 1/10，必然失敗
	skew := make([]*big.Int, 0, 1000)
	for i := int64(0); i < 900; i++ {
		skew = append(skew, big.NewInt(i%100))
	}
	for i := int64(0); i < 100; i++ {
		skew = append(skew, big.NewInt(100+i*9))
	}
	r, _ = stats.ChiSquaredTest(skew, 10, 0.05)
	if r.Passed {
		t.Fatalf("skewed sequence should fail: %+v", r)
	}

	if _, err := stats.ChiSquaredTest(seq, 1, 0.05); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("1 bin should fail")
	}
	if _, err := stats.ChiSquaredTest(seq, 10, 1.5); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("bad alpha should fail")
	}
}

func TestChiSquaredCritical(t *testing.T) {
	if v := stats.ChiSquaredCritical(32, 0.05); math.Abs(v-44.985) > 0.01 {
		t.Fatalf("critical(32, .05) = %v", v)
	}
	if v := stats.ChiSquaredCritical(11, 0.05); math.Abs(v-18.307) > 0.01 {
		t.Fatalf("critical(11, .05) = %v", v)
	}
	if !math.IsNaN(stats.ChiSquaredCritical(1, 0.05)) {
		t.Fatalf("1 bin has no critical value")
	}
}

func TestEntropy(t *testing.T) {
	constant := make([]int, numSamples)
	for i := range constant {
		constant[i] = 42
	}
	h, err := stats.Entropy(constant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h >= 0.1 {
		t.Fatalf("constant entropy = %v", h)
	}

	mt := engine.NewMT19937("mt", 7)
	wide := make([]uint64, numSamples)
	for i := range wide {
		wide[i] = mt.NextUint64()
	}
	h, _ = stats.Entropy(wide)
	if h <= 0.9 {
		t.Fatalf("uniform entropy = %v", h)
	}
	if nh, _ := stats.NormalizedEntropy(wide); math.Abs(nh-1) > 1e-9 {
		t.Fatalf("distinct values should have normalized entropy 1, got %v", nh)
	}

	if h, _ := stats.Entropy([]string{"a", "b", "a", "b"}); math.Abs(h-1) > 1e-12 {
		t.Fatalf("two equiprobable symbols should give 1 bit, got %v", h)
	}
	if h, _ := stats.EntropyBig(bigs(1, 2, 3, 4, 1, 2, 3, 4)); math.Abs(h-2) > 1e-12 {
		t.Fatalf("four equiprobable symbols should give 2 bits, got %v", h)
	}
	if _, err := stats.Entropy([]int{}); !errors.Is(err, errs.ErrEmptySample) {
		t.Fatalf("empty data should fail")
	}
	if _, err := stats.EntropyBig(nil); !errors.Is(err, errs.ErrEmptySample) {
		t.Fatalf("empty data should fail")
	}
}

func TestCDFs(t *testing.T) {
	if stats.UniformCDF(-1) != 0 || stats.UniformCDF(0.25) != 0.25 || stats.UniformCDF(3) != 1 {
		t.Fatalf("UniformCDF mismatch")
	}
	cdf := stats.UniformIntCDF(100, 1000)
	if cdf(50) != 0 || cdf(2000) != 1 || cdf(550) != 0.5 {
		t.Fatalf("UniformIntCDF mismatch")
	}
	n := stats.NormalCDF(50, 15)
	if math.Abs(n(50)-0.5) > 1e-12 || math.Abs(n(65)-0.841344746) > 1e-6 {
		t.Fatalf("NormalCDF mismatch: %v %v", n(50), n(65))
	}
}

func TestDescribe(t *testing.T) {
	s, err := stats.Describe([]float64{4, 1, 3, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.N != 4 || s.Mean != 2.5 || s.Min != 1 || s.Max != 4 {
		t.Fatalf("summary mismatch: %+v", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(5.0/3.0)) > 1e-12 {
		t.Fatalf("std dev = %v", s.StdDev)
	}
	if _, err := stats.Describe(nil); !errors.Is(err, errs.ErrEmptySample) {
		t.Fatalf("empty should fail")
	}
}

func TestDiscretize(t *testing.T) {
	got, err := stats.Discretize([]float64{-1, 0, 0.49, 0.5, 0.99, 7}, 0, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []int{0, 0, 0, 1, 1, 1}) {
		t.Fatalf("discretize = %v", got)
	}
	if _, err := stats.Discretize(nil, 1, 1, 2); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("empty range should fail")
	}
}
