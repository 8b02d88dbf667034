package engine

import (
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/numth"
	"github.com/zintix-labs/prnglab/sdk/synth"
)

// LCG 線性同餘生成器：state = (a*state + c) mod m。
//
// m 為 2 的冪次時走遮罩快速路徑（uint64 乘法自然 mod 2^64，再取低位），
// 否則以 128-bit MulMod 計算，不會溢位。
type LCG struct {
	name  string
	a     uint64
	c     uint64
	m     uint64
	mask  uint64
	pow2  bool
	state uint64
}

// NewLCG 建立 LCG，seed 會先取 mod m。
func NewLCG(name string, a, c, m, seed uint64) (*LCG, error) {
	if m <= 1 {
		return nil, errs.DegenerateModulusf("lcg %q: modulus %d <= 1", name, m)
	}
	g := &LCG{
		name:  name,
		a:     a % m,
		c:     c % m,
		m:     m,
		pow2:  m&(m-1) == 0,
		state: seed % m,
	}
	g.mask = m - 1
	return g, nil
}

// NewLCGFromParams 以合成的參數建立 LCG。
func NewLCGFromParams(name string, p synth.LCGParams, seed uint64) (*LCG, error) {
	return NewLCG(name, p.Multiplier, p.Increment, p.Modulus, seed)
}

func (g *LCG) Name() string { return g.name }
func (g *LCG) Kind() Kind   { return KindLCG }

// Params 回傳建構常數。
func (g *LCG) Params() synth.LCGParams {
	return synth.LCGParams{Multiplier: g.a, Increment: g.c, Modulus: g.m}
}

// State 回傳目前狀態（最後一次輸出的值）。
func (g *LCG) State() uint64 { return g.state }

func (g *LCG) step(x uint64) uint64 {
	if g.pow2 {
		return (g.a*x + g.c) & g.mask
	}
	return numth.AddMod(numth.MulMod(g.a, x, g.m), g.c, g.m)
}

// NextUint64 推進並回傳新狀態。
func (g *LCG) NextUint64() uint64 {
	g.state = g.step(g.state)
	return g.state
}

// Next 回傳新狀態的 float64 值；m <= 2^53 時沒有精度損失。
func (g *LCG) Next() float64 {
	return float64(g.NextUint64())
}

// Float64 回傳 state/m，落在 [0,1)。
func (g *LCG) Float64() float64 {
	return float64(g.NextUint64()) / float64(g.m)
}

// Period 從目前狀態出發，回傳第一個輸出值再次出現所需的步數；不影響 g 的狀態。
// 超過 limit 步仍未重複時回傳 (limit, false)。
func (g *LCG) Period(limit uint64) (uint64, bool) {
	first := g.step(g.state)
	x := first
	for i := uint64(1); i <= limit; i++ {
		x = g.step(x)
		if x == first {
			return i, true
		}
	}
	return limit, false
}
