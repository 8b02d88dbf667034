package numth

import "github.com/zintix-labs/prnglab/errs"

// EnumerationLimit 以下的模數，原根判定直接列舉 {g^i mod n} 的剩餘類個數。
const EnumerationLimit = 1 << 16

// DistinctPrimeFactors 回傳 n 的相異質因數（遞增）。
//
// 流程：
//  1. 先剝除 2 與 3（2 的冪次模數會在此直接結束）。
//  2. 剩餘餘因數若為質數則直接收下。
//  3. 否則以 Atkin 篩取得 √rem 以內的質數逐一試除。
//
// 若剩餘餘因數需要超過 MaxSieveLimit 的篩表，回傳 InvalidArgument。
func DistinctPrimeFactors(n uint64) ([]uint64, error) {
	if n == 0 {
		return nil, errs.InvalidArgumentf("prime factors: n must be > 0")
	}
	factors := make([]uint64, 0, 8)
	for _, p := range [...]uint64{2, 3} {
		if n%p == 0 {
			factors = append(factors, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n == 1 {
		return factors, nil
	}
	if IsPrime(n) {
		return append(factors, n), nil
	}

	lim := isqrt(n)
	primes, err := PrimeSieve(5, lim)
	if err != nil {
		return nil, errs.Wrap(err, "prime factors: cofactor too large to sieve")
	}
	for _, p := range primes {
		if p*p > n {
			break
		}
		if n%p == 0 {
			factors = append(factors, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	// 剩下的必為大於 √n 的單一質因數
	if n > 1 {
		factors = append(factors, n)
	}
	return factors, nil
}

// EulerTotient 回傳 φ(n)：[1,n] 中與 n 互質的整數個數。
// 以相異質因數套用乘積公式 φ(n) = n * Π(1 - 1/p)。
//
// 限制：剝除 2、3 後若餘因數為合成數，需以篩表試除到 √rem；
// √rem 超過 MaxSieveLimit（餘因數約大於 2^52）時回傳 InvalidArgument。
// 2 的冪次與 2^32 以內的模數都不受此限制。
func EulerTotient(n uint64) (uint64, error) {
	if n == 0 {
		return 0, errs.InvalidArgumentf("euler totient: n must be > 0")
	}
	factors, err := DistinctPrimeFactors(n)
	if err != nil {
		return 0, err
	}
	result := n
	for _, p := range factors {
		result = result / p * (p - 1)
	}
	return result, nil
}

// IsPrimitiveRoot 判斷 g 是否為模 n 的原根：gcd(g,n) = 1 且 g 的乘法階等於 φ(n)。
//
//   - n <= EnumerationLimit : 列舉 {g^i mod n : 0 <= i < n} 的個數與 φ(n) 比較。
//   - 更大的 n : 對 φ(n) 的每個質因數 q 檢查 g^(φ/q) != 1，兩者等價但不需 O(n) 記憶體。
func IsPrimitiveRoot(g, n uint64) (bool, error) {
	if n == 0 {
		return false, errs.InvalidArgumentf("primitive root: modulus must be > 0")
	}
	if n == 1 {
		// Z/1Z 只有一個元素，φ(1) = 1，且 g^0 mod 1 = 0 自成一類
		return true, nil
	}
	if GCD(g%n, n) != 1 {
		return false, nil
	}
	phi, err := EulerTotient(n)
	if err != nil {
		return false, err
	}
	if n <= EnumerationLimit {
		return ResidueCount(g, n) == phi, nil
	}

	qs, err := DistinctPrimeFactors(phi)
	if err != nil {
		return false, err
	}
	for _, q := range qs {
		if ModPow(g, phi/q, n) == 1 {
			return false, nil
		}
	}
	return true, nil
}

// ResidueCount 回傳 |{g^i mod n : 0 <= i < n}|。
// 與 n 互質時即為 g 的乘法階。
func ResidueCount(g, n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	seen := make(map[uint64]struct{}, 64)
	x := uint64(1) % n
	for i := uint64(0); i < n; i++ {
		if _, ok := seen[x]; ok {
			// 冪次序列一旦重複即進入循環，不會再出現新剩餘類
			break
		}
		seen[x] = struct{}{}
		x = MulMod(x, g, n)
	}
	return uint64(len(seen))
}

// HasPrimitiveRoot 回傳模 n 是否存在原根：n 為 1, 2, 4, p^k 或 2p^k（p 為奇質數）。
func HasPrimitiveRoot(n uint64) (bool, error) {
	if n == 0 {
		return false, errs.InvalidArgumentf("primitive root: modulus must be > 0")
	}
	if n <= 4 {
		return true, nil
	}
	if n%4 == 0 {
		return false, nil
	}
	if n%2 == 0 {
		n /= 2
	}
	factors, err := DistinctPrimeFactors(n)
	if err != nil {
		return false, err
	}
	return len(factors) == 1, nil
}
