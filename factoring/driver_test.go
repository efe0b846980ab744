package factoring

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/corrodedHash/facto/primality"
)

func mustFactorize(t *testing.T, n int64, opts ...Option) *Result {
	t.Helper()
	res, err := Factorize(context.Background(), big.NewInt(n), opts...)
	require.NoError(t, err)
	require.NoError(t, res.Verify())
	return res
}

func TestFactorizeSmall(t *testing.T) {
	res := mustFactorize(t, 12)
	require.Len(t, res.Factors, 2)
	require.Equal(t, "2", res.Factors[0].Prime.String())
	require.Equal(t, 2, res.Factors[0].Exponent)
	require.Equal(t, "3", res.Factors[1].Prime.String())
	require.Equal(t, 1, res.Factors[1].Exponent)
}

func TestFactorizeOne(t *testing.T) {
	res := mustFactorize(t, 1)
	require.Empty(t, res.Factors)
}

func TestFactorizePrime(t *testing.T) {
	res := mustFactorize(t, 97)
	require.Len(t, res.Factors, 1)
	require.Equal(t, "97", res.Factors[0].Prime.String())
	require.Equal(t, 1, res.Factors[0].Exponent)
	require.Equal(t, primality.DefinitelyPrime, res.Factors[0].Certificate.Verdict)
}

func TestFactorizeCarmichael(t *testing.T) {
	// 561 = 3 * 11 * 17 falls entirely to the trial division strip.
	res := mustFactorize(t, 561)
	require.Len(t, res.Factors, 3)
	for i, want := range []string{"3", "11", "17"} {
		require.Equal(t, want, res.Factors[i].Prime.String())
		require.Equal(t, 1, res.Factors[i].Exponent)
	}
}

func TestFactorizePMinus1Path(t *testing.T) {
	// 65537196611 = 65537 * 1000003. With trial division capped below both
	// factors and rho disabled, only p-1 can split it: 65537 - 1 = 2^16
	// divides 1000!.
	res := mustFactorize(t, 65537196611,
		WithTrialBound(500),
		WithRhoRestarts(0),
		WithSmoothnessSchedule(1000))
	require.Len(t, res.Factors, 2)
	require.Equal(t, "65537", res.Factors[0].Prime.String())
	require.Equal(t, "1000003", res.Factors[1].Prime.String())
}

func TestFactorizeBudgetExhaustion(t *testing.T) {
	// 34359738421 * 34359738451: both factors are far beyond the trial
	// range and 1000 operations are nowhere near enough for rho.
	n, ok := new(big.Int).SetString("1180591625390335725871", 10)
	require.True(t, ok)

	res, err := Factorize(context.Background(), n, WithBudget(1000))
	require.Nil(t, res)

	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	require.Zero(t, incomplete.Residue.Cmp(n))
	require.Empty(t, incomplete.Pending)
	require.Empty(t, incomplete.Partial)
}

// incompleteProduct multiplies an IncompleteError's payload back together;
// it must equal the factorization input exactly for the error to be
// resumable.
func incompleteProduct(e *IncompleteError) *big.Int {
	p := new(big.Int).Set(e.Residue)
	for _, r := range e.Pending {
		p.Mul(p, r)
	}
	t := new(big.Int)
	for _, f := range e.Partial {
		t.Exp(f.Prime, big.NewInt(int64(f.Exponent)), nil)
		p.Mul(p, t)
	}
	return p
}

func TestFactorizeIncompleteCarriesPending(t *testing.T) {
	// 1000003 * (34359738421 * 34359738451): the budget lets rho split
	// off 1000003 and then dies on the semiprime, leaving the split-off
	// part on the work list still uncertified. The error must account
	// for it or the caller cannot resume.
	n, ok := new(big.Int).SetString("1180595167165211896878177613", 10)
	require.True(t, ok)

	res, err := Factorize(context.Background(), n, WithBudget(50000))
	require.Nil(t, res)

	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	require.Equal(t, "1180591625390335725871", incomplete.Residue.String())
	require.Len(t, incomplete.Pending, 1)
	require.Equal(t, "1000003", incomplete.Pending[0].String())
	require.Zero(t, incompleteProduct(incomplete).Cmp(n))
}

func TestFactorizeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Factorize(ctx, big.NewInt(1000003))
	require.Nil(t, res)
	require.ErrorIs(t, err, context.Canceled)

	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	require.Equal(t, "1000003", incomplete.Residue.String())
}

func TestFactorizeInvalidInput(t *testing.T) {
	for _, n := range []int64{0, -5} {
		res, err := Factorize(context.Background(), big.NewInt(n))
		require.Nil(t, res)

		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, n, invalid.N.Int64())
	}
}

type recordingSubscriber struct {
	splits     [][]*big.Int
	primes     []*big.Int
	composites []*big.Int
}

func (r *recordingSubscriber) Split(_ *big.Int, primes, _, _ []*big.Int) {
	cp := make([]*big.Int, len(primes))
	for i, p := range primes {
		cp[i] = new(big.Int).Set(p)
	}
	r.splits = append(r.splits, cp)
}

func (r *recordingSubscriber) Prime(p *big.Int) {
	r.primes = append(r.primes, new(big.Int).Set(p))
}

func (r *recordingSubscriber) Composite(c *big.Int) {
	r.composites = append(r.composites, new(big.Int).Set(c))
}

func TestFactorizeEvents(t *testing.T) {
	rec := &recordingSubscriber{}
	mustFactorize(t, 561, WithEvents(rec))

	require.Len(t, rec.composites, 1)
	require.Equal(t, "561", rec.composites[0].String())
	require.Len(t, rec.splits, 1)
	require.Len(t, rec.splits[0], 3)

	rec = &recordingSubscriber{}
	mustFactorize(t, 97, WithEvents(rec))
	require.Len(t, rec.primes, 1)
	require.Equal(t, "97", rec.primes[0].String())
	require.Empty(t, rec.composites)
}

func TestFactorizeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	properties.Property("product of certified factors recovers the input", prop.ForAll(
		func(v int64) bool {
			n := big.NewInt(v)
			res, err := Factorize(context.Background(), n)
			if err != nil {
				return false
			}
			return res.Verify() == nil && res.Product().Cmp(n) == 0
		},
		gen.Int64Range(1, 1<<62),
	))

	properties.Property("factorization is deterministic", prop.ForAll(
		func(v int64) bool {
			a, err := Factorize(context.Background(), big.NewInt(v))
			if err != nil {
				return false
			}
			b, err := Factorize(context.Background(), big.NewInt(v))
			if err != nil {
				return false
			}
			if len(a.Factors) != len(b.Factors) {
				return false
			}
			for i := range a.Factors {
				if a.Factors[i].Prime.Cmp(b.Factors[i].Prime) != 0 ||
					a.Factors[i].Exponent != b.Factors[i].Exponent {
					return false
				}
			}
			return true
		},
		gen.Int64Range(2, 1<<40),
	))

	properties.TestingRun(t)
}

func TestWithTrialBoundClamp(t *testing.T) {
	cfg := DefaultConfig()
	WithTrialBound(1 << 30)(cfg)
	require.Equal(t, uint64(131071), cfg.TrialBound)

	WithTrialBound(0)(cfg)
	require.Equal(t, uint64(131071), cfg.TrialBound)
}

func TestFactorizeZeroTrialBound(t *testing.T) {
	// a zero bound means the full table to both the oracle and the trial
	// stage; with the two disagreeing, a divisor the oracle reports could
	// never be stripped and the driver would spin on the residue
	res := mustFactorize(t, 9, WithTrialBound(0))
	require.Len(t, res.Factors, 1)
	require.Equal(t, "3", res.Factors[0].Prime.String())
	require.Equal(t, 2, res.Factors[0].Exponent)
}
