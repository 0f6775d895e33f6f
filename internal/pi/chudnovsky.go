package pi

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// ErrInvalidDigitCount is returned when the requested digit count is not
// positive.
var ErrInvalidDigitCount = errors.New("invalid digit count: must be positive")

const (
	// digitsPerTerm is the number of decimal digits each Chudnovsky term
	// contributes (the exact rate is log10(640320^3/24/72) ~= 14.18; we
	// round down so the term count errs on the side of too many).
	digitsPerTerm = 14

	// guardDigits are extra digits computed beyond the request so that the
	// floor division at the end cannot disturb the digits we return.
	guardDigits = 10

	// ctxCheckSpan is the minimum number of series terms a split must cover
	// before it is worth checking for cancellation. Smaller splits finish in
	// microseconds; checking them would only add overhead.
	ctxCheckSpan = 64
)

// Chudnovsky series constants:
//
//	1/pi = 12 * sum_k (-1)^k (6k)! (13591409 + 545140134 k)
//	                  / ((3k)! (k!)^3 640320^(3k + 3/2))
var (
	seriesA  = big.NewInt(13591409)
	seriesB  = big.NewInt(545140134)
	c3Over24 = big.NewInt(10939058860032000) // 640320^3 / 24
	factor   = big.NewInt(426880)            // pi = 426880*sqrt(10005)/sum
	sqrtArg  = big.NewInt(10005)
)

// FractionalDigits returns exactly n fractional digits of pi as a decimal
// digit string ("1415926535..."). The digits are exact: guard digits are
// computed internally and truncated away, so the returned string never
// carries rounding artifacts at its tail.
//
// The computation is CPU-bound and single-threaded; its cost grows roughly
// as O(n log^3 n). The context is checked between splitting steps, so a
// cancelled context aborts a long computation promptly.
func FractionalDigits(ctx context.Context, n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidDigitCount
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prec := n + guardDigits
	terms := int64(prec/digitsPerTerm) + 1

	_, q, r, err := split(ctx, 0, terms)
	if err != nil {
		return "", err
	}

	// pi = 426880 * sqrt(10005) * Q / R. The leaves fold the complete
	// (A + B*k) coefficient into R, k=0 included, so R(0,terms) is the
	// whole series sum. Scaling the square-root argument by 10^(2*prec)
	// keeps everything in integer arithmetic and yields
	// floor(pi * 10^prec) directly.
	sqrtC := new(big.Int).Mul(sqrtArg, pow10(2*prec))
	sqrtC.Sqrt(sqrtC)

	num := bigfft.Mul(bigfft.Mul(q, factor), sqrtC)

	scaled := num.Div(num, r)

	// scaled is "3" followed by prec fractional digits.
	s := scaled.String()
	if len(s) < n+1 {
		return "", fmt.Errorf("pi computation produced %d digits, expected at least %d", len(s)-1, n)
	}
	return s[1 : n+1], nil
}

// split computes the binary-splitting triple (P, Q, R) for the half-open
// term range [a, b).
func split(ctx context.Context, a, b int64) (p, q, r *big.Int, err error) {
	if b-a >= ctxCheckSpan {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
	}

	if b-a == 1 {
		p, q, r = term(a)
		return p, q, r, nil
	}

	m := (a + b) / 2
	p1, q1, r1, err := split(ctx, a, m)
	if err != nil {
		return nil, nil, nil, err
	}
	p2, q2, r2, err := split(ctx, m, b)
	if err != nil {
		return nil, nil, nil, err
	}

	// P(a,b) = P(a,m) * P(m,b)
	// Q(a,b) = Q(a,m) * Q(m,b)
	// R(a,b) = Q(m,b)*R(a,m) + P(a,m)*R(m,b)
	p = bigfft.Mul(p1, p2)
	q = bigfft.Mul(q1, q2)
	r = new(big.Int).Add(bigfft.Mul(q2, r1), bigfft.Mul(p1, r2))
	return p, q, r, nil
}

// term computes the leaf triple for a single series term k.
func term(k int64) (p, q, r *big.Int) {
	if k == 0 {
		return big.NewInt(1), big.NewInt(1), new(big.Int).Set(seriesA)
	}

	// P = (6k-5)(2k-1)(6k-1)
	p = big.NewInt(6*k - 5)
	p.Mul(p, big.NewInt(2*k-1))
	p.Mul(p, big.NewInt(6*k-1))

	// Q = k^3 * 640320^3/24
	kk := big.NewInt(k)
	q = new(big.Int).Mul(kk, kk)
	q.Mul(q, kk)
	q.Mul(q, c3Over24)

	// R = P * (13591409 + 545140134k), sign alternating with k.
	r = new(big.Int).Mul(seriesB, kk)
	r.Add(r, seriesA)
	r.Mul(r, p)
	if k&1 == 1 {
		r.Neg(r)
	}
	return p, q, r
}

// pow10 returns 10^e.
func pow10(e int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(e)), nil)
}
