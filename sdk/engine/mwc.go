package engine

import (
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/synth"
)

// MWC 為 32-bit multiply-with-carry：
//
//	t = a*x + c      (64-bit)
//	x = t mod 2^32
//	c = t >> 32
//	out = (x + c) mod 2^32
//
// a 應使 a*2^32-1 為安全質數（見 synth.ValidMWCMultiplier），任意常數可能落入短循環。
type MWC struct {
	name string
	a    uint64
	c    uint64
	x    uint64
}

// NewMWC 建立 MWC。a == 0 或 (x, c) 全為 0 的退化狀態回傳 InvalidArgument。
func NewMWC(name string, a, c, seed uint32) (*MWC, error) {
	if a == 0 {
		return nil, errs.InvalidArgumentf("mwc %q: multiplier must be > 0", name)
	}
	if c == 0 && seed == 0 {
		return nil, errs.InvalidArgumentf("mwc %q: all-zero state never leaves zero", name)
	}
	return &MWC{name: name, a: uint64(a), c: uint64(c), x: uint64(seed)}, nil
}

// NewMWCFromParams 以合成的參數建立 MWC。
func NewMWCFromParams(name string, p synth.MWCParams, seed uint32) (*MWC, error) {
	return NewMWC(name, p.Multiplier, p.Carry, seed)
}

func (g *MWC) Name() string { return g.name }
func (g *MWC) Kind() Kind   { return KindMWC }

// Carry 回傳目前進位。
func (g *MWC) Carry() uint32 { return uint32(g.c) }

func (g *MWC) next32() uint32 {
	// a, x, c 皆 < 2^32，t <= 2^64 - 2^32 不會溢位
	t := g.a*g.x + g.c
	g.x = t & 0xFFFFFFFF
	g.c = t >> 32
	return uint32(g.x + g.c)
}

// NextUint64 回傳 32-bit 輸出（放大成 uint64）。
func (g *MWC) NextUint64() uint64 {
	return uint64(g.next32())
}

func (g *MWC) Next() float64 {
	return float64(g.next32())
}

// Float64 回傳 out/2^32，落在 [0,1)。
func (g *MWC) Float64() float64 {
	return float64(g.next32()) / (1 << 32)
}
