package numth

import "github.com/zintix-labs/prnglab/errs"

// MaxSieveLimit 是 PrimeSieve 接受的最大上界，限制篩表記憶體用量（約 64 MiB）。
const MaxSieveLimit = 1 << 26

// PrimeSieve 以 Atkin 篩回傳 [min, max] 內所有質數（遞增）。
//
// Atkin 篩以三組二次型翻轉候選位：
//   - 4x²+y² ≡ 1,5 (mod 12)
//   - 3x²+y² ≡ 7   (mod 12)
//   - 3x²-y² ≡ 11  (mod 12), x > y
//
// 最後剔除所有質數平方的倍數。max 必須 >= 2。
func PrimeSieve(min, max uint64) ([]uint64, error) {
	if max < 2 {
		return nil, errs.InvalidArgumentf("prime sieve: max %d < 2", max)
	}
	if max > MaxSieveLimit {
		return nil, errs.InvalidArgumentf("prime sieve: max %d exceeds limit %d", max, MaxSieveLimit)
	}
	if min > max {
		return []uint64{}, nil
	}

	mark := make([]bool, max+1)
	if max >= 2 {
		mark[2] = true
	}
	if max >= 3 {
		mark[3] = true
	}

	lim := isqrt(max)
	for x := uint64(1); x <= lim; x++ {
		xx := x * x
		for y := uint64(1); y <= lim; y++ {
			yy := y * y

			n := 4*xx + yy
			if n <= max && (n%12 == 1 || n%12 == 5) {
				mark[n] = !mark[n]
			}

			n = 3*xx + yy
			if n <= max && n%12 == 7 {
				mark[n] = !mark[n]
			}

			if x > y {
				n = 3*xx - yy
				if n <= max && n%12 == 11 {
					mark[n] = !mark[n]
				}
			}
		}
	}

	for i := uint64(5); i <= lim; i++ {
		if mark[i] {
			sq := i * i
			for j := sq; j <= max; j += sq {
				mark[j] = false
			}
		}
	}

	start := min
	if start < 2 {
		start = 2
	}
	primes := make([]uint64, 0, 64)
	for i := start; i <= max; i++ {
		if mark[i] {
			primes = append(primes, i)
		}
	}
	return primes, nil
}
