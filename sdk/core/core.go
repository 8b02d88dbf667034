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

// Package core 定義 prnglab 使用的亂數來源合約，並提供預設 PCG64 實作與常用取樣工具。
//
// 注意：這裡的所有來源都不是密碼學安全的，不可作為安全原語使用。
package core

import (
	"math"
	"math/big"
	"math/bits"

	"github.com/zintix-labs/prnglab/errs"
)

// MaxSafeInteger 為 float64 可精確表示的最大整數 (2^53 - 1)。
const MaxSafeInteger = 1<<53 - 1

// RAND 定義核心亂數取樣能力。
//
// 為什麼要求同時提供 4 個方法（Uint64 / Float64 / UintN / IntN），而不是只要求 Uint64？
//   - 不同 PRNG 的原生輸出寬度不同，bounded 生成與 [0,1) 浮點的精度取捨應由實作決定。
//   - Miller-Rabin 的見證數抽樣、Box-Muller 的均勻抽樣都只依賴這個介面。
type RAND interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// UintN 回傳 [0,max) 的 uint 亂數，若 max == 0 回傳 0。
	UintN(uint) uint
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

// PRNG 是可由 PRNGFactory 產生的亂數來源。
type PRNG interface {
	RAND
}

type PRNGFactory interface {
	// New 以指定 seed 建立新的 PRNG。
	//
	// 合約：在同一個實作與同一個版本下，New(seed) 必須是決定性的，
	// 相同的 seed 必須產生相同的輸出序列。Registry 以此派生每個引擎的獨立來源。
	New(int64) PRNG
}

// DefaultPRNG 實作預設的 PRNGFactory
type DefaultPRNG struct{}

// New 滿足合約
func (d *DefaultPRNG) New(seed int64) PRNG {
	return NewPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// Core 封裝 PRNG，並提供常用取樣與工具方法。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}

// Uint64N 回傳 [0,n) 的無偏亂數，n == 0 回傳 0。
//
// 與 math/rand/v2 相同的乘法高位 + 拒絕採樣，但只依賴 Uint64()，因此適用任何 PRNG。
func (c *Core) Uint64N(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	if n&(n-1) == 0 {
		return c.Uint64() & (n - 1)
	}
	hi, lo := bits.Mul64(c.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(c.Uint64(), n)
		}
	}
	return hi
}

// UniformRange 回傳 [min,max]（含兩端）的均勻整數。
func (c *Core) UniformRange(min, max int64) (int64, error) {
	if min > max {
		return 0, errs.InvalidArgumentf("uniform range: min %d > max %d", min, max)
	}
	span := uint64(max-min) + 1
	if span == 0 { // 整個 int64 範圍
		return int64(c.Uint64()), nil
	}
	return min + int64(c.Uint64N(span)), nil
}

// SafeInteger 回傳 [0, 2^53-1) 的整數，轉成 float64 不會失真。
func (c *Core) SafeInteger() int64 {
	return int64(c.Uint64N(MaxSafeInteger))
}

// Float64Open 回傳 (0,1] 的浮點亂數。
func (c *Core) Float64Open() float64 {
	return 1 - c.Float64()
}

// BigRange 回傳 [min,max]（含兩端）的均勻大整數。
//
// 作法：
//  1. span = max - min + 1，取 bitLen。
//  2. 以 64-bit 為單位抽取 words，最高位 word 依 bitLen 遮罩。
//  3. 候選值 >= span 則拒絕重抽（期望重抽次數 < 2）。
//
// 全程整數運算，不經過浮點，避免超過 2^53 的精度損失。
func (c *Core) BigRange(min, max *big.Int) (*big.Int, error) {
	if min == nil || max == nil {
		return nil, errs.InvalidArgumentf("big range: nil bound")
	}
	if min.Cmp(max) > 0 {
		return nil, errs.InvalidArgumentf("big range: min %s > max %s", min, max)
	}
	span := new(big.Int).Sub(max, min)
	span.Add(span, big.NewInt(1))

	if span.IsUint64() {
		v := c.Uint64N(span.Uint64())
		return new(big.Int).Add(min, new(big.Int).SetUint64(v)), nil
	}

	bitLen := span.BitLen()
	nWords := (bitLen + 63) / 64
	topBits := uint(bitLen - (nWords-1)*64)
	topMask := uint64(math.MaxUint64)
	if topBits < 64 {
		topMask = (uint64(1) << topBits) - 1
	}

	words := make([]big.Word, 0, nWords*2)
	cand := new(big.Int)
	for {
		words = words[:0]
		// big.Word 為 little-endian word 序
		for i := 0; i < nWords; i++ {
			w := c.Uint64()
			if i == nWords-1 {
				w &= topMask
			}
			words = appendWord(words, w)
		}
		cand.SetBits(words)
		if cand.Cmp(span) < 0 {
			return new(big.Int).Add(min, cand), nil
		}
	}
}

// appendWord 依平台字寬把 uint64 展開成 big.Word。
func appendWord(ws []big.Word, v uint64) []big.Word {
	if bits.UintSize == 64 {
		return append(ws, big.Word(v))
	}
	return append(ws, big.Word(uint32(v)), big.Word(uint32(v>>32)))
}
