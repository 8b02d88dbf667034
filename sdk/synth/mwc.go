package synth

import (
	"fmt"
	"math"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/numth"
)

// DefaultMWCMultiplier 是 Marsaglia 建議的 32-bit MWC 乘數。
const DefaultMWCMultiplier uint32 = 4294957665

// MWCParams 是 MWC 的乘數與初始進位。
//
// 對應的模數 p = a*2^32 - 1；當 p 與 (p-1)/2 皆為質數時，
// 2^32 為模 p 的高階元素，週期約為 (p-1)/2。
type MWCParams struct {
	Multiplier uint32 `json:"multiplier" yaml:"multiplier"`
	Carry      uint32 `json:"carry" yaml:"carry"`
}

func (p MWCParams) String() string {
	return fmt.Sprintf("a=%d c=%d", p.Multiplier, p.Carry)
}

// ValidMWCMultiplier 檢查 a*2^32-1 是否為安全質數。
func ValidMWCMultiplier(a uint32) bool {
	if a < 2 {
		return false
	}
	p := uint64(a)<<32 - 1
	return numth.IsPrime(p) && numth.IsPrime((p-1)/2)
}

// GenerateMWCParams 從 uint32(seed)|1<<31 往下搜尋有效乘數，低於 2^31 時繞回 2^32-1 繼續，
// 最多檢查 MaxSearchSteps 個候選。初始進位取 seed 高 32 位並落在 [1, a-1]。
func GenerateMWCParams(seed uint64) (MWCParams, error) {
	a := uint32(seed) | 1<<31
	steps := min(MaxSearchSteps, 1<<31)
	for i := 0; i < steps; i++ {
		if ValidMWCMultiplier(a) {
			c := 1 + uint32(seed>>32)%(a-1)
			return MWCParams{Multiplier: a, Carry: c}, nil
		}
		if a == 1<<31 {
			a = math.MaxUint32
		} else {
			a--
		}
	}
	return MWCParams{}, errs.NoSuitableParametersf("mwc params: no safe-prime multiplier within %d candidates of seed %d", steps, seed)
}
