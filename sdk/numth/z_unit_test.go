package numth

import (
	"errors"
	"math/big"
	"slices"
	"testing"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
)

func TestExtendedGCDBezout(t *testing.T) {
	cases := [][2]int64{
		{240, 46}, {46, 240}, {17, 5}, {0, 9}, {9, 0}, {0, 0},
		{-240, 46}, {240, -46}, {1 << 40, 3 << 20}, {1071, 462},
	}
	for _, c := range cases {
		a, b := c[0], c[1]
		g, x, y := ExtendedGCD(a, b)
		if g < 0 {
			t.Fatalf("gcd(%d,%d) negative: %d", a, b, g)
		}
		if a*x+b*y != g {
			t.Fatalf("bezout failed for (%d,%d): %d*%d + %d*%d != %d", a, b, a, x, b, y, g)
		}
		ua, ub := uint64(abs64(a)), uint64(abs64(b))
		if GCD(ua, ub) != uint64(g) {
			t.Fatalf("GCD mismatch for (%d,%d): %d vs %d", a, b, GCD(ua, ub), g)
		}
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestModPowMatchesBig(t *testing.T) {
	r := core.New(core.Default().New(1))
	for i := 0; i < 500; i++ {
		b := r.Uint64()
		e := r.Uint64() >> uint(r.IntN(64))
		m := r.Uint64() | 1
		want := new(big.Int).Exp(new(big.Int).SetUint64(b), new(big.Int).SetUint64(e), new(big.Int).SetUint64(m))
		if got := ModPow(b, e, m); got != want.Uint64() {
			t.Fatalf("ModPow(%d,%d,%d) = %d want %s", b, e, m, got, want)
		}
	}
	if ModPow(12345, 678, 1) != 0 {
		t.Fatalf("mod 1 must be 0")
	}
	if ModPow(0, 0, 7) != 1 {
		t.Fatalf("0^0 mod 7 should be 1")
	}
}

func TestMulModNoOverflow(t *testing.T) {
	max := ^uint64(0)
	m := max - 58 // 2^64 - 59 為質數
	got := MulMod(max-1, max-1, m)
	want := new(big.Int).Mul(new(big.Int).SetUint64(max-1), new(big.Int).SetUint64(max-1))
	want.Mod(want, new(big.Int).SetUint64(m))
	if got != want.Uint64() {
		t.Fatalf("MulMod overflow: got %d want %s", got, want)
	}
	if AddMod(max, max, m) != new(big.Int).Mod(new(big.Int).Add(new(big.Int).SetUint64(max), new(big.Int).SetUint64(max)), new(big.Int).SetUint64(m)).Uint64() {
		t.Fatalf("AddMod overflow")
	}
}

func TestIsPrimeKnownTable(t *testing.T) {
	primes := []uint64{
		2, 3, 5, 7, 11, 13, 97, 7919, 65537, 2147483647,
		1000000007, 4294967291, 18446744073709551557, // 2^64 - 59
	}
	composites := []uint64{
		0, 1, 4, 9, 15, 25, 91, 65535, 1 << 32,
		561, 1105, 1729, 41041, 825265, // Carmichael
		2047, 3215031751, 3825123056546413051, // 強偽質數
		4294967297, // 641 * 6700417
	}
	for _, p := range primes {
		if !IsPrime(p) {
			t.Fatalf("%d should be prime", p)
		}
	}
	for _, c := range composites {
		if IsPrime(c) {
			t.Fatalf("%d should be composite", c)
		}
	}
}

func TestIsPrimeAgreesWithBig(t *testing.T) {
	for n := uint64(0); n < 20000; n++ {
		want := new(big.Int).SetUint64(n).ProbablyPrime(0)
		if got := IsPrime(n); got != want {
			t.Fatalf("IsPrime(%d) = %v want %v", n, got, want)
		}
	}
}

func TestIsPrimeWithCustomSource(t *testing.T) {
	src := core.NewPCG64WithSeed(99)
	if !IsPrimeWith(104729, 5, src) {
		t.Fatalf("104729 is prime")
	}
	if IsPrimeWith(104730, 5, src) {
		t.Fatalf("104730 is composite")
	}
}

func TestPrimeSieve(t *testing.T) {
	got, err := PrimeSieve(0, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}
	if !slices.Equal(got, want) {
		t.Fatalf("sieve mismatch: %v", got)
	}

	got, _ = PrimeSieve(10, 30)
	if !slices.Equal(got, []uint64{11, 13, 17, 19, 23, 29}) {
		t.Fatalf("sieve window mismatch: %v", got)
	}

	got, _ = PrimeSieve(2, 2)
	if !slices.Equal(got, []uint64{2}) {
		t.Fatalf("sieve [2,2] mismatch: %v", got)
	}

	all, _ := PrimeSieve(0, 100000)
	count := 0
	for n := uint64(0); n <= 100000; n++ {
		if IsPrime(n) {
			if count >= len(all) || all[count] != n {
				t.Fatalf("sieve disagrees with IsPrime at %d", n)
			}
			count++
		}
	}
	if count != len(all) || count != 9592 {
		t.Fatalf("expected 9592 primes below 1e5, got sieve=%d isprime=%d", len(all), count)
	}

	if _, err := PrimeSieve(0, 1); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("max < 2 should fail, got %v", err)
	}
	if _, err := PrimeSieve(0, MaxSieveLimit+1); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("over limit should fail, got %v", err)
	}
}

func TestEulerTotient(t *testing.T) {
	cases := map[uint64]uint64{
		1: 1, 2: 1, 9: 6, 10: 4, 12: 4, 36: 12, 97: 96,
		1 << 16: 1 << 15, 1 << 53: 1 << 52,
		65537:   65536,
		1000000: 400000,
		// 1000003 * 1000033，餘因數需經篩表試除
		1000036000099: 1000002 * 1000032,
	}
	for n, want := range cases {
		got, err := EulerTotient(n)
		if err != nil {
			t.Fatalf("phi(%d) error: %v", n, err)
		}
		if got != want {
			t.Fatalf("phi(%d) = %d want %d", n, got, want)
		}
	}
	if _, err := EulerTotient(0); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("phi(0) should fail")
	}
	// 兩個接近 2^30 的質數相乘，√n 超過篩表上限
	if _, err := EulerTotient(1073741789 * 1073741827); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("cofactor past the sieve limit should be InvalidArgument, got %v", err)
	}
}

func TestDistinctPrimeFactors(t *testing.T) {
	got, err := DistinctPrimeFactors(2 * 2 * 3 * 5 * 5 * 7 * 101)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []uint64{2, 3, 5, 7, 101}) {
		t.Fatalf("factors mismatch: %v", got)
	}
}

func TestPrimitiveRootEnumerationMatchesOrderTest(t *testing.T) {
	// 7 的原根為 3, 5
	for g := uint64(1); g < 7; g++ {
		ok, err := IsPrimitiveRoot(g, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok != (g == 3 || g == 5) {
			t.Fatalf("IsPrimitiveRoot(%d, 7) = %v", g, ok)
		}
	}

	// 模 2^k (k >= 3) 不存在原根
	for g := uint64(1); g < 64; g += 2 {
		if ok, _ := IsPrimitiveRoot(g, 64); ok {
			t.Fatalf("%d should not be a primitive root mod 64", g)
		}
	}
	if ok, _ := IsPrimitiveRoot(3, 4); !ok {
		t.Fatalf("3 is a primitive root mod 4")
	}
	if ok, _ := IsPrimitiveRoot(2, 6); ok {
		t.Fatalf("non-coprime g can not be a primitive root")
	}

	// 65537 恰好超過列舉上限，以下皆走階檢定路徑
	if ok, _ := IsPrimitiveRoot(3, 65537); !ok {
		t.Fatalf("3 is a primitive root mod 65537")
	}
	if ok, _ := IsPrimitiveRoot(2, 65537); ok {
		t.Fatalf("2 has order 32 mod 65537")
	}
	if ok, _ := IsPrimitiveRoot(5, 1000000007); !ok {
		t.Fatalf("5 is a primitive root mod 1e9+7")
	}
	if ok, _ := IsPrimitiveRoot(4, 1000000007); ok {
		t.Fatalf("a square can not be a primitive root mod an odd prime")
	}

	// 兩條路徑在小模數上互相驗證
	for _, n := range []uint64{9, 10, 11, 13, 18, 25, 27, 50, 54} {
		phi, _ := EulerTotient(n)
		qs, _ := DistinctPrimeFactors(phi)
		for g := uint64(1); g < n; g++ {
			if GCD(g, n) != 1 {
				continue
			}
			byOrder := true
			for _, q := range qs {
				if ModPow(g, phi/q, n) == 1 {
					byOrder = false
				}
			}
			byEnum := ResidueCount(g, n) == phi
			if byOrder != byEnum {
				t.Fatalf("g=%d n=%d order=%v enum=%v", g, n, byOrder, byEnum)
			}
		}
	}
}

func TestHasPrimitiveRoot(t *testing.T) {
	yes := []uint64{1, 2, 3, 4, 5, 9, 10, 18, 25, 27, 50, 65537, 2 * 65537}
	no := []uint64{8, 12, 15, 16, 21, 1 << 16, 1 << 32}
	for _, n := range yes {
		if ok, err := HasPrimitiveRoot(n); err != nil || !ok {
			t.Fatalf("%d should have primitive roots (err=%v)", n, err)
		}
	}
	for _, n := range no {
		if ok, _ := HasPrimitiveRoot(n); ok {
			t.Fatalf("%d should not have primitive roots", n)
		}
	}
	// 與列舉結果一致
	for n := uint64(2); n <= 60; n++ {
		phi, _ := EulerTotient(n)
		found := false
		for g := uint64(1); g < n && !found; g++ {
			if GCD(g, n) == 1 && ResidueCount(g, n) == phi {
				found = true
			}
		}
		if ok, _ := HasPrimitiveRoot(n); ok != found {
			t.Fatalf("HasPrimitiveRoot(%d) = %v, enumeration found=%v", n, ok, found)
		}
	}
}
