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

// Package numth 是參數合成所需的數論核心：
// gcd / 擴展歐幾里得、模冪、Miller-Rabin 質數測試、Atkin 篩、Euler φ 與原根判定。
//
// 所有模運算都以 128-bit 中間值 (math/bits) 完成，不使用浮點 pow，
// 因此在整個 uint64 範圍內都不會溢位或失真。
package numth

import (
	"math"
	"math/bits"
)

// ExtendedGCD 回傳 (g, x, y) 使得 a*x + b*y = g，且 g >= 0。
func ExtendedGCD(a, b int64) (g, x, y int64) {
	x, lastX := int64(0), int64(1)
	y, lastY := int64(1), int64(0)
	for b != 0 {
		q := a / b
		a, b = b, a-q*b
		x, lastX = lastX-q*x, x
		y, lastY = lastY-q*y, y
	}
	if a < 0 {
		return -a, -lastX, -lastY
	}
	if a == 0 {
		return 0, 0, lastY
	}
	return a, lastX, lastY
}

// GCD 回傳最大公因數，GCD(0,0) = 0。
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// MulMod 回傳 (a*b) mod m，m == 0 時回傳 0。
func MulMod(a, b, m uint64) uint64 {
	if m == 0 {
		return 0
	}
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// AddMod 回傳 (a+b) mod m，a、b 可以 >= m。
func AddMod(a, b, m uint64) uint64 {
	if m == 0 {
		return 0
	}
	sum, carry := bits.Add64(a, b, 0)
	return bits.Rem64(carry, sum, m)
}

// ModPow 以迭代平方乘法計算 base^exp mod m。
// m <= 1 時回傳 0（任何數 mod 1 皆為 0）。
func ModPow(base, exp, m uint64) uint64 {
	if m <= 1 {
		return 0
	}
	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = MulMod(result, base, m)
		}
		exp >>= 1
		base = MulMod(base, base, m)
	}
	return result
}

// isqrt 回傳 floor(sqrt(n))。
func isqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	// float 開根號在 2^52 以上可能偏差 1，兩側修正
	for r > 0 && r > n/r {
		r--
	}
	for (r+1) <= n/(r+1) {
		r++
	}
	return r
}
