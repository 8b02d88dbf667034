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

// Package synth 由 seed 與位寬 / 模數推導生成器常數。
//
// LCG 有三種搜尋準則：
//   - Legacy   : 乘數為質數（GenerateLCGParams）
//   - Full     : 乘數為質數且 ≡ 1 mod 4，保證 2^w 模數下滿週期（GenerateFullPeriodLCGParams）
//   - Strict   : 乘數為質數且為模數的原根（GeneratePrimitiveRootLCGParams）
//
// 所有搜尋迴圈都有步數上限，耗盡時回傳 NoSuitableParameters，絕不回傳半成品。
package synth

import (
	"fmt"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/numth"
)

const (
	// MaxWidth 為 LCG 模數 2^w 的最大位寬，2^53 內的整數可被 float64 精確表示。
	MaxWidth = 53
	// MaxSearchSteps 為所有常數搜尋迴圈的候選數上限。
	MaxSearchSteps = 1 << 20
	// MaxStrictModulus 為原根準則接受的最大模數。
	MaxStrictModulus = 1 << 32
)

// Mode 為 LCG 參數搜尋準則。
type Mode uint8

const (
	ModeLegacy Mode = iota
	ModeFull
	ModeStrict
)

var modeName = map[Mode]string{
	ModeLegacy: "legacy",
	ModeFull:   "full",
	ModeStrict: "strict",
}

func (m Mode) String() string {
	if s, ok := modeName[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode 將字串轉換成 Mode，空字串視為 legacy。
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "legacy":
		return ModeLegacy, nil
	case "full", "hull-dobell":
		return ModeFull, nil
	case "strict", "primitive-root":
		return ModeStrict, nil
	}
	return 0, errs.InvalidArgumentf("unknown lcg param mode %q", s)
}

// LCGParams 是 LCG 的常數三元組，計算完成後不可變。
type LCGParams struct {
	Multiplier uint64 `json:"multiplier" yaml:"multiplier"`
	Increment  uint64 `json:"increment" yaml:"increment"`
	Modulus    uint64 `json:"modulus" yaml:"modulus"`
}

func (p LCGParams) String() string {
	return fmt.Sprintf("a=%d c=%d m=%d", p.Multiplier, p.Increment, p.Modulus)
}

// Generate 依 mode 派發到對應的搜尋。width 在 strict 模式下換算為模數 2^width。
func Generate(mode Mode, seed uint64, width int) (LCGParams, error) {
	switch mode {
	case ModeLegacy:
		return GenerateLCGParams(seed, width)
	case ModeFull:
		return GenerateFullPeriodLCGParams(seed, width)
	case ModeStrict:
		m, err := modulusOf(width)
		if err != nil {
			return LCGParams{}, err
		}
		return GeneratePrimitiveRootLCGParams(seed, m)
	}
	return LCGParams{}, errs.InvalidArgumentf("unknown lcg param mode %d", mode)
}

// GenerateLCGParams 回傳 (a, c, m)：
//   - m = 2^width
//   - a 從 seed|1 開始每次 +2，直到 IsPrime(a)
//   - c 為與 m 互質的最小正整數
func GenerateLCGParams(seed uint64, width int) (LCGParams, error) {
	m, err := modulusOf(width)
	if err != nil {
		return LCGParams{}, err
	}
	a, err := searchPrime(seed|1, 2)
	if err != nil {
		return LCGParams{}, errs.Wrap(err, fmt.Sprintf("legacy lcg params (seed=%d width=%d)", seed, width))
	}
	c, err := smallestCoprime(m)
	if err != nil {
		return LCGParams{}, err
	}
	return LCGParams{Multiplier: a, Increment: c, Modulus: m}, nil
}

// GenerateFullPeriodLCGParams 依 Hull–Dobell 定理推導滿週期常數：
// 模數 2^width 下，a ≡ 1 (mod 4) 且 c 為奇數即保證週期為 m。
// 為了與 legacy 的輸出性質相容，a 仍要求為質數。
func GenerateFullPeriodLCGParams(seed uint64, width int) (LCGParams, error) {
	m, err := modulusOf(width)
	if err != nil {
		return LCGParams{}, err
	}
	start := seed&^3 | 1
	if start < seed {
		start += 4
	}
	if start < seed { // 溢位
		return LCGParams{}, errs.NoSuitableParametersf("full period lcg params: seed %d leaves no candidates", seed)
	}
	a, err := searchPrime(start, 4)
	if err != nil {
		return LCGParams{}, errs.Wrap(err, fmt.Sprintf("full period lcg params (seed=%d width=%d)", seed, width))
	}
	c, err := smallestCoprime(m)
	if err != nil {
		return LCGParams{}, err
	}
	return LCGParams{Multiplier: a, Increment: c, Modulus: m}, nil
}

// GeneratePrimitiveRootLCGParams 在 [1, modulus) 的奇數中搜尋同時為質數與模數原根的乘數。
// 從 (seed mod modulus)|1 開始，到頂後回繞一次。
//
// 注意：2^k (k >= 3) 沒有原根，這個準則對此類模數必然失敗。
func GeneratePrimitiveRootLCGParams(seed, modulus uint64) (LCGParams, error) {
	if modulus <= 1 {
		return LCGParams{}, errs.DegenerateModulusf("primitive root lcg params: modulus %d <= 1", modulus)
	}
	if modulus > MaxStrictModulus {
		return LCGParams{}, errs.InvalidArgumentf("primitive root lcg params: modulus %d exceeds %d", modulus, uint64(MaxStrictModulus))
	}

	has, err := numth.HasPrimitiveRoot(modulus)
	if err != nil {
		return LCGParams{}, errs.Wrap(err, "primitive root lcg params")
	}
	if !has {
		return LCGParams{}, errs.NoSuitableParametersf("primitive root lcg params: modulus %d has no primitive roots", modulus)
	}

	// φ 與其質因數只算一次，候選數以階檢定判斷（與列舉等價）
	phi, err := numth.EulerTotient(modulus)
	if err != nil {
		return LCGParams{}, errs.Wrap(err, "primitive root lcg params")
	}
	qs, err := numth.DistinctPrimeFactors(phi)
	if err != nil {
		return LCGParams{}, errs.Wrap(err, "primitive root lcg params")
	}
	isRoot := func(g uint64) bool {
		if numth.GCD(g, modulus) != 1 {
			return false
		}
		for _, q := range qs {
			if numth.ModPow(g, phi/q, modulus) == 1 {
				return false
			}
		}
		return true
	}

	start := (seed % modulus) | 1
	if start >= modulus {
		start = 1
	}
	a, steps := start, 0
	for {
		if numth.IsPrime(a) && isRoot(a) {
			break
		}
		steps++
		if steps >= MaxSearchSteps {
			return LCGParams{}, errs.NoSuitableParametersf("primitive root lcg params: search exhausted after %d candidates (modulus=%d)", steps, modulus)
		}
		a += 2
		if a >= modulus {
			a = 1
		}
		if a == start {
			return LCGParams{}, errs.NoSuitableParametersf("primitive root lcg params: no prime primitive root below %d", modulus)
		}
	}

	c, err := smallestCoprime(modulus)
	if err != nil {
		return LCGParams{}, err
	}
	return LCGParams{Multiplier: a, Increment: c, Modulus: modulus}, nil
}

// FullPeriod 以 Hull–Dobell 定理判斷 p 是否為滿週期：
//  1. gcd(c, m) = 1
//  2. m 的每個質因數 q 都整除 a-1
//  3. 若 4 | m，則 4 | a-1
func FullPeriod(p LCGParams) (bool, error) {
	m := p.Modulus
	if m <= 1 {
		return false, errs.DegenerateModulusf("full period: modulus %d <= 1", m)
	}
	if numth.GCD(p.Increment%m, m) != 1 {
		return false, nil
	}
	qs, err := numth.DistinctPrimeFactors(m)
	if err != nil {
		return false, errs.Wrap(err, "full period")
	}
	for _, q := range qs {
		if (p.Multiplier%q+q-1)%q != 0 {
			return false, nil
		}
	}
	if m%4 == 0 && p.Multiplier%4 != 1 {
		return false, nil
	}
	return true, nil
}

func modulusOf(width int) (uint64, error) {
	if width < 0 || width > MaxWidth {
		return 0, errs.InvalidWidthf("width %d out of range [0, %d]", width, MaxWidth)
	}
	if width == 0 {
		return 0, errs.DegenerateModulusf("width 0 gives modulus 1")
	}
	return uint64(1) << width, nil
}

// searchPrime 從 start 起以 step 遞增，回傳第一個質數。
func searchPrime(start, step uint64) (uint64, error) {
	a := start
	for i := 0; i < MaxSearchSteps; i++ {
		if numth.IsPrime(a) {
			return a, nil
		}
		next := a + step
		if next < a {
			break
		}
		a = next
	}
	return 0, errs.NoSuitableParametersf("no prime multiplier within %d candidates from %d", MaxSearchSteps, start)
}

// smallestCoprime 回傳與 m 互質的最小正整數。
func smallestCoprime(m uint64) (uint64, error) {
	for c := uint64(1); c < m || c == 1; c++ {
		if numth.GCD(c, m) == 1 {
			return c, nil
		}
	}
	return 0, errs.DegenerateModulusf("no increment coprime with modulus %d", m)
}
