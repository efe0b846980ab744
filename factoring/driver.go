// Package factoring implements the certified factorization engine: a
// work-list driver over an ordered list of factoring stages (trial division,
// Pollard rho, Pollard p-1), with the primality oracle deciding when a
// residue is fully resolved.
package factoring

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/corrodedHash/facto/logger"
	"github.com/corrodedHash/facto/primality"
)

// Factorize resolves n into certified prime powers. On success the returned
// Result satisfies Result.Verify; when the configured budget or ctx expires
// first, it returns a *IncompleteError and no Result.
func Factorize(ctx context.Context, n *big.Int, opts ...Option) (*Result, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if n.Sign() <= 0 {
		return nil, &InvalidInputError{N: new(big.Int).Set(n)}
	}
	if cfg.Parallelism > 1 {
		return factorizeParallel(ctx, n, cfg)
	}

	d := newDriver(ctx, n, cfg)
	if err := d.run(); err != nil {
		return nil, err
	}
	return d.result(), nil
}

type primeEntry struct {
	prime    *big.Int
	exponent int
	cert     primality.Certificate
}

type driver struct {
	ctx    context.Context
	cfg    *Config
	oracle primality.Config
	budget *Budget
	n      *big.Int

	work   []*big.Int
	primes map[string]*primeEntry
}

func newDriver(ctx context.Context, n *big.Int, cfg *Config) *driver {
	return &driver{
		ctx:    ctx,
		cfg:    cfg,
		oracle: primality.Config{TrialBound: cfg.TrialBound, Witnesses: cfg.Witnesses},
		budget: NewBudget(cfg.OperationBudget),
		n:      new(big.Int).Set(n),
		work:   []*big.Int{new(big.Int).Set(n)},
		primes: make(map[string]*primeEntry),
	}
}

func (d *driver) run() error {
	log := logger.Logger().With().Str("component", "driver").Logger()
	for len(d.work) > 0 {
		residue := d.work[len(d.work)-1]
		d.work = d.work[:len(d.work)-1]
		if residue.Cmp(bigOne) == 0 {
			continue
		}
		if err := d.checkpoint(residue); err != nil {
			return err
		}

		cert := primality.Test(residue, &d.oracle)
		d.budget.Spend(int64(len(cert.Bases)) + 1)
		if cert.IsPrime() {
			log.Debug().Str("residue", residue.String()).Str("verdict", cert.Verdict.String()).Msg("residue resolved")
			d.addPrime(residue, 1, cert)
			d.cfg.Events.Prime(residue)
			continue
		}
		d.cfg.Events.Composite(residue)

		outcome, resolved := d.attack(residue, cert)
		if resolved {
			continue
		}
		if outcome.Found() {
			log.Debug().Str("residue", residue.String()).Str("factor", outcome.Factor.String()).Msg("split")
			d.cfg.Events.Split(residue, nil, nil, []*big.Int{outcome.Factor, outcome.Cofactor})
			d.work = append(d.work, outcome.Factor, outcome.Cofactor)
			continue
		}
		return d.incomplete(residue)
	}
	return nil
}

// attack runs the stages in cost order against one composite residue.
// resolved means the residue was fully handled in place (trial division
// stripped it); otherwise a found Outcome carries a single split.
func (d *driver) attack(residue *big.Int, cert primality.Certificate) (Outcome, bool) {
	// the oracle paid for a trial scan already; only re-walk the table
	// when it found a divisor there
	if cert.Divisor != nil {
		var stripped []*big.Int
		cofactor, _ := trialDivision(residue, d.cfg.TrialBound, func(p uint64, exponent int) {
			prime := new(big.Int).SetUint64(p)
			d.addPrime(prime, exponent, primality.Test(prime, &d.oracle))
			stripped = append(stripped, prime)
		})
		d.budget.Spend(1)
		rest := []*big.Int{}
		if cofactor.Cmp(bigOne) != 0 {
			d.work = append(d.work, cofactor)
			rest = append(rest, cofactor)
		}
		d.cfg.Events.Split(residue, stripped, nil, rest)
		return Outcome{}, true
	}

	for attempt := 0; attempt < d.cfg.RhoRestarts; attempt++ {
		if d.budget.Exhausted() || d.ctx.Err() != nil {
			return Outcome{}, false
		}
		if f := pollardRho(residue, uint64(attempt), d.budget); f != nil {
			return split(residue, f), false
		}
	}

	for _, bound := range d.cfg.SmoothnessSchedule {
		if d.budget.Exhausted() || d.ctx.Err() != nil {
			return Outcome{}, false
		}
		if f := pollardPMinus1(residue, bound, d.budget); f != nil {
			return split(residue, f), false
		}
	}

	return Outcome{}, false
}

func (d *driver) addPrime(p *big.Int, exponent int, cert primality.Certificate) {
	key := p.Text(16)
	if e, ok := d.primes[key]; ok {
		e.exponent += exponent
		return
	}
	d.primes[key] = &primeEntry{
		prime:    new(big.Int).Set(p),
		exponent: exponent,
		cert:     cert,
	}
}

// checkpoint is the cooperative cancellation point between stage
// invocations.
func (d *driver) checkpoint(residue *big.Int) error {
	if err := d.ctx.Err(); err != nil {
		incomplete := d.incomplete(residue)
		return fmt.Errorf("%w: %w", incomplete, err)
	}
	if d.budget.Exhausted() {
		return d.incomplete(residue)
	}
	return nil
}

func (d *driver) incomplete(residue *big.Int) error {
	err := &IncompleteError{Residue: new(big.Int).Set(residue)}
	for _, w := range d.work {
		if w.Cmp(bigOne) != 0 {
			err.Pending = append(err.Pending, new(big.Int).Set(w))
		}
	}
	for _, e := range d.primes {
		err.Partial = append(err.Partial, Factor{Prime: e.prime, Exponent: e.exponent, Certificate: e.cert})
	}
	sortFactors(err.Partial)
	return err
}

func (d *driver) result() *Result {
	res := &Result{N: d.n}
	for _, e := range d.primes {
		res.Factors = append(res.Factors, Factor{Prime: e.prime, Exponent: e.exponent, Certificate: e.cert})
	}
	sortFactors(res.Factors)
	return res
}

func sortFactors(fs []Factor) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].Prime.Cmp(fs[j].Prime) < 0 })
}
