package engine

import (
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
)

// TwoLane 為圖表用的雙通道 seeded 生成器：
//
//	lane1 = 36969*(lane1 & 0xFFFF) + (lane1 >> 16)
//	lane2 = 18000*(lane2 & 0xFFFF) + (lane2 >> 16)
//	out   = ((lane1 << 16) + lane2 mod 2^32) / 2^32 + 0.5
//
// Next 落在 [0.5, 1.5)。品質弱於 LCG/MWC，且週期與 seed 高度相關；這是此演算法本身的限制。
type TwoLane struct {
	name  string
	lane1 uint32
	lane2 uint32
}

// NewTwoLane 建立 TwoLane。任一通道為 0 時該通道永遠停在 0，回傳 InvalidArgument。
func NewTwoLane(name string, seed1, seed2 uint32) (*TwoLane, error) {
	if seed1 == 0 || seed2 == 0 {
		return nil, errs.InvalidArgumentf("twolane %q: lane seeds must be non-zero", name)
	}
	return &TwoLane{name: name, lane1: seed1, lane2: seed2}, nil
}

func (g *TwoLane) Name() string { return g.name }
func (g *TwoLane) Kind() Kind   { return KindTwoLane }

func (g *TwoLane) mix() uint32 {
	g.lane1 = 36969*(g.lane1&0xFFFF) + (g.lane1 >> 16)
	g.lane2 = 18000*(g.lane2&0xFFFF) + (g.lane2 >> 16)
	return g.lane1<<16 + g.lane2
}

func (g *TwoLane) Next() float64 {
	return float64(g.mix())/(1<<32) + 0.5
}

// Float64 回傳同一混合值的 [0,1) 視圖：混合值視為有號 32-bit 後平移 0.5，
// 恰等於 Next() 的小數部分。
func (g *TwoLane) Float64() float64 {
	return float64(int32(g.mix()))/(1<<32) + 0.5
}

// EndBiased 為兩端加權的均勻抽樣：> 0.95 收斂為 1，< 0.05 收斂為 0。
type EndBiased struct {
	name string
	src  core.RAND
}

// EndBiasHigh / EndBiasLow 為兩端收斂的門檻。
const (
	EndBiasHigh = 0.95
	EndBiasLow  = 0.05
)

func NewEndBiased(name string, src core.RAND) (*EndBiased, error) {
	if src == nil {
		return nil, errs.InvalidArgumentf("endbiased %q: nil uniform source", name)
	}
	return &EndBiased{name: name, src: src}, nil
}

func (g *EndBiased) Name() string { return g.name }
func (g *EndBiased) Kind() Kind   { return KindEndBiased }

func (g *EndBiased) Next() float64 {
	n := g.src.Float64()
	switch {
	case n > EndBiasHigh:
		return 1
	case n < EndBiasLow:
		return 0
	}
	return n
}
