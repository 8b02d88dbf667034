package numth

import (
	"github.com/zintix-labs/prnglab/sdk/core"
)

// MillerRabinRounds 為 IsPrime 固定使用的見證數輪數。
// 合成數被誤判為質數的機率上界為 4^-20。
const MillerRabinRounds = 20

// IsPrime 判斷 n 是否（極可能）為質數。
//
//   - n <= 1 : false
//   - n <= 3 : true
//   - 可被 2 或 3 整除 : false
//   - 其餘交給 Miller-Rabin（20 輪），見證數均勻取自 [2, n-2]
//
// 見證數來源是以 n 為 seed 的 PCG64：同一個 n 永遠得到同一個判定，
// 且本函數不持有任何全域可變狀態。
func IsPrime(n uint64) bool {
	return IsPrimeWith(n, MillerRabinRounds, core.NewWitnessPCG64(n))
}

// IsPrimeWith 與 IsPrime 相同，但由呼叫端提供輪數與見證數來源。
func IsPrimeWith(n uint64, rounds int, src core.RAND) bool {
	if n <= 1 {
		return false
	}
	if n <= 3 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}
	return MillerRabin(n, rounds, src)
}

// MillerRabin 對奇數 n (> 3) 執行 rounds 輪測試。
func MillerRabin(n uint64, rounds int, src core.RAND) bool {
	if n <= 3 || n%2 == 0 {
		return n == 2 || n == 3
	}

	// n-1 = 2^r * d
	d := n - 1
	r := 0
	for d%2 == 0 {
		d >>= 1
		r++
	}

	c := core.New(src)
	for i := 0; i < rounds; i++ {
		a := 2 + c.Uint64N(n-3) // [2, n-2]
		x := ModPow(a, d, n)
		if x == 1 || x == n-1 {
			continue
		}
		composite := true
		for j := 0; j < r-1; j++ {
			x = MulMod(x, x, n)
			if x == n-1 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}
