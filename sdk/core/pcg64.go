// Package core implements the PCG64 random number generator.
//
// The PCG algorithm is designed by Melissa O'Neill; the state machine and the
// bounded draws come from math/rand/v2.

package core

import (
	"crypto/rand"
	"math"
	"math/big"
	r2 "math/rand/v2"
)

// PCG64 是 prnglab 的預設均勻來源，用在三個地方：
//   - DefaultPRNG：Registry 為 Gaussian / Polar / EndBiased 派生的獨立來源
//   - Core：UniformRange / BigRange 的底層位元
//   - NewWitnessPCG64：Miller-Rabin 以 n 為 seed 的見證數串流
type PCG64 struct {
	src *r2.PCG
	rnd *r2.Rand
}

// NewPCG64 使用加密隨機來源產生 seed，建立新的 PCG64 實例。
func NewPCG64() *PCG64 {
	seed, _ := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	return NewPCG64WithSeed(seed.Int64())
}

// NewPCG64WithSeed 以指定 seed 建立新的 PCG64 實例。
// seed 先經 splitmix64 展開成兩個 64-bit 狀態，避免相鄰 seed 產生相關序列。
func NewPCG64WithSeed(seed int64) *PCG64 {
	x := uint64(seed) ^ 0x9e3779b97f4a7c15
	src := r2.NewPCG(splitmix64(x), splitmix64(x^0xDA942042E4DD58B5))
	return &PCG64{src: src, rnd: r2.New(src)}
}

// NewWitnessPCG64 回傳判定 n 是否為質數用的見證數串流。
// 同一個 n 永遠得到同一串見證數，所以 IsPrime(n) 是 n 的純函數。
func NewWitnessPCG64(n uint64) *PCG64 {
	return NewPCG64WithSeed(int64(n))
}

// Uint64 回傳 64-bit 亂數
func (r *PCG64) Uint64() uint64 {
	return r.src.Uint64()
}

// UintN 產出 [0,max) 的 uint 整數；max == 0 回傳 0
func (r *PCG64) UintN(max uint) uint {
	if max == 0 {
		return 0
	}
	return r.rnd.UintN(max)
}

// IntN 產出 [0,max) 的整數；max <= 0 回傳 -1
func (r *PCG64) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	return r.rnd.IntN(max)
}

// Float64 產出 [0,1) 的 float64(53bits精度)
func (r *PCG64) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// splitmix64 將輸入值混洗成新的 64-bit 狀態，用於種子展開。
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
