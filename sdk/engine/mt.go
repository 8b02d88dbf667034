package engine

import (
	"gonum.org/v1/gonum/mathext/prng"
)

// MT19937 包裝 gonum 的 Mersenne Twister，作為稽核時的高品質參考來源。
type MT19937 struct {
	name string
	src  *prng.MT19937
}

func NewMT19937(name string, seed uint64) *MT19937 {
	src := prng.NewMT19937()
	src.Seed(seed)
	return &MT19937{name: name, src: src}
}

func (g *MT19937) Name() string { return g.name }
func (g *MT19937) Kind() Kind   { return KindMT19937 }

// NextUint64 回傳 64-bit 輸出（兩個 32-bit 字組組合）。
func (g *MT19937) NextUint64() uint64 { return g.src.Uint64() }

// Next 回傳 32-bit 輸出。
func (g *MT19937) Next() float64 { return float64(g.src.Uint32()) }

// Float64 回傳 53-bit 精度的 [0,1) 值。
func (g *MT19937) Float64() float64 {
	return float64(g.src.Uint64()>>11) / (1 << 53)
}
