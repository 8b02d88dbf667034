package prnglab

import (
	"crypto/rand"
	"math"
	"math/big"
	"sync/atomic"

	"github.com/zintix-labs/prnglab/errs"
)

const mask63 = uint64(1<<63) - 1

// seedMaker 由基底 seed 為每個引擎派生獨立的 seed。
type seedMaker struct {
	state atomic.Uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	s := &seedMaker{}
	s.state.Store(uint64(seed) & mask63)
	return s
}

// state 走全週期（不重複），再用可逆 mix63 打散
//
// Registry 本身不保證併發安全，但 HTTP 層可能在持鎖外派生 seed，因此推進仍以 CAS 完成。
func (s *seedMaker) next() int64 {
	for {
		old := s.state.Load()                                            // always masked
		next := (old*6364136223846793005 + 1442695040888963407) & mask63 // full-period LCG mod 2^63
		if s.state.CompareAndSwap(old, next) {
			return int64(mix63(next)) // 一定非負
		}
	}
}

func (s *seedMaker) nextUint64() uint64 {
	return uint64(s.next())
}

// nextLane 回傳非 0 的 32-bit 通道 seed
func (s *seedMaker) nextLane() uint32 {
	return uint32(s.next()) | 1
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63 // 乘奇數 ⇒ mod 2^63 可逆
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}

// cryptoSeed 以 crypto/rand 產生 [0, MaxInt64) 的基底 seed
func cryptoSeed() (int64, error) {
	seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, errs.Wrap(err, "generate seed failed")
	}
	return seed.Int64(), nil
}
