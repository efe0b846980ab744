package factoring

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/corrodedHash/facto/primality"
)

// factorizeParallel resolves independent residues concurrently. Every split
// hands one half to a new errgroup task; stage state (modulus contexts,
// scratch) is per task, results merge under a single mutex and the first
// IncompleteError cancels the remaining workers through the group context.
func factorizeParallel(ctx context.Context, n *big.Int, cfg *Config) (*Result, error) {
	pd := &parallelDriver{
		cfg:     cfg,
		oracle:  primality.Config{TrialBound: cfg.TrialBound, Witnesses: cfg.Witnesses},
		budget:  NewBudget(cfg.OperationBudget),
		primes:  make(map[string]*primeEntry),
		pending: make(map[string]*pendingResidue),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	pd.group = g

	root := new(big.Int).Set(n)
	pd.commit(nil, resolution{parts: []*big.Int{root}})
	pd.spawn(gctx, root)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{N: new(big.Int).Set(n)}
	for _, e := range pd.primes {
		res.Factors = append(res.Factors, Factor{Prime: e.prime, Exponent: e.exponent, Certificate: e.cert})
	}
	sortFactors(res.Factors)
	return res, nil
}

// pendingResidue is a split-off part no worker has resolved yet. Counted,
// since the same value can be pending twice (a square's halves, say).
type pendingResidue struct {
	val   *big.Int
	count int
}

type parallelDriver struct {
	cfg    *Config
	oracle primality.Config
	budget *Budget
	group  *errgroup.Group

	mu      sync.Mutex
	primes  map[string]*primeEntry
	pending map[string]*pendingResidue
	err     error
}

// resolution is the outcome of working one pending residue: parts still to
// be resolved and prime powers proven along the way.
type resolution struct {
	parts  []*big.Int
	primes []*primeEntry
}

// commit atomically exchanges one pending residue for its resolution, so a
// concurrent IncompleteError snapshot always sees a cut whose product is the
// input. A nil residue seeds the initial work.
func (pd *parallelDriver) commit(residue *big.Int, res resolution) {
	pd.mu.Lock()
	defer pd.mu.Unlock()
	if residue != nil {
		pd.dropPending(residue)
	}
	for _, p := range res.parts {
		pd.addPending(p)
	}
	for _, e := range res.primes {
		pd.mergePrime(e)
	}
}

func (pd *parallelDriver) addPending(r *big.Int) {
	key := r.Text(16)
	if e, ok := pd.pending[key]; ok {
		e.count++
		return
	}
	pd.pending[key] = &pendingResidue{val: new(big.Int).Set(r), count: 1}
}

func (pd *parallelDriver) dropPending(r *big.Int) {
	key := r.Text(16)
	if e, ok := pd.pending[key]; ok {
		e.count--
		if e.count == 0 {
			delete(pd.pending, key)
		}
	}
}

func (pd *parallelDriver) mergePrime(e *primeEntry) {
	key := e.prime.Text(16)
	if have, ok := pd.primes[key]; ok {
		have.exponent += e.exponent
		return
	}
	pd.primes[key] = e
}

func (pd *parallelDriver) spawn(ctx context.Context, residue *big.Int) {
	pd.group.Go(func() error {
		return pd.resolve(ctx, residue)
	})
}

// dispatch hands a residue to a new task when a worker slot is free and
// resolves it inline otherwise; blocking on a slot from inside a worker
// could deadlock the group.
func (pd *parallelDriver) dispatch(ctx context.Context, residue *big.Int) error {
	if pd.group.TryGo(func() error { return pd.resolve(ctx, residue) }) {
		return nil
	}
	return pd.resolve(ctx, residue)
}

// resolve works one pending residue to completion, spawning tasks for the
// far half of every split and iterating on the near half itself.
func (pd *parallelDriver) resolve(ctx context.Context, residue *big.Int) error {
	for {
		if residue.Cmp(bigOne) == 0 {
			pd.commit(residue, resolution{})
			return nil
		}
		if err := ctx.Err(); err != nil {
			return pd.incomplete(residue, err)
		}
		if pd.budget.Exhausted() {
			return pd.incomplete(residue, nil)
		}

		cert := primality.Test(residue, &pd.oracle)
		pd.budget.Spend(int64(len(cert.Bases)) + 1)
		if cert.IsPrime() {
			pd.commit(residue, resolution{primes: []*primeEntry{
				{prime: new(big.Int).Set(residue), exponent: 1, cert: cert},
			}})
			pd.cfg.Events.Prime(residue)
			return nil
		}
		pd.cfg.Events.Composite(residue)

		next, err := pd.attack(ctx, residue, cert)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		residue = next
	}
}

// attack mirrors the sequential stage order. It returns the residue to
// continue with (nil when fully handled here) and spawns tasks for any
// additional parts.
func (pd *parallelDriver) attack(ctx context.Context, residue *big.Int, cert primality.Certificate) (*big.Int, error) {
	if cert.Divisor != nil {
		var stripped []*primeEntry
		cofactor, _ := trialDivision(residue, pd.cfg.TrialBound, func(p uint64, exponent int) {
			prime := new(big.Int).SetUint64(p)
			stripped = append(stripped, &primeEntry{
				prime:    prime,
				exponent: exponent,
				cert:     primality.Test(prime, &pd.oracle),
			})
		})
		pd.budget.Spend(1)
		res := resolution{primes: stripped}
		if cofactor.Cmp(bigOne) != 0 {
			res.parts = []*big.Int{cofactor}
		}
		pd.commit(residue, res)
		if cofactor.Cmp(bigOne) != 0 {
			return cofactor, nil
		}
		return nil, nil
	}

	for attempt := 0; attempt < pd.cfg.RhoRestarts; attempt++ {
		if ctx.Err() != nil || pd.budget.Exhausted() {
			return nil, pd.incomplete(residue, ctx.Err())
		}
		if f := pollardRho(residue, uint64(attempt), pd.budget); f != nil {
			o := split(residue, f)
			pd.commit(residue, resolution{parts: []*big.Int{o.Factor, o.Cofactor}})
			pd.cfg.Events.Split(residue, nil, nil, []*big.Int{o.Factor, o.Cofactor})
			if err := pd.dispatch(ctx, o.Cofactor); err != nil {
				return nil, err
			}
			return o.Factor, nil
		}
	}
	for _, bound := range pd.cfg.SmoothnessSchedule {
		if ctx.Err() != nil || pd.budget.Exhausted() {
			return nil, pd.incomplete(residue, ctx.Err())
		}
		if f := pollardPMinus1(residue, bound, pd.budget); f != nil {
			o := split(residue, f)
			pd.commit(residue, resolution{parts: []*big.Int{o.Factor, o.Cofactor}})
			pd.cfg.Events.Split(residue, nil, nil, []*big.Int{o.Factor, o.Cofactor})
			if err := pd.dispatch(ctx, o.Cofactor); err != nil {
				return nil, err
			}
			return o.Factor, nil
		}
	}
	return nil, pd.incomplete(residue, nil)
}

// incomplete builds the error payload for the first worker that fails and
// hands the same error to every later one; the payload is a consistent cut
// of the shared state, so Partial, Residue and Pending multiply back to the
// input.
func (pd *parallelDriver) incomplete(residue *big.Int, cause error) error {
	pd.mu.Lock()
	defer pd.mu.Unlock()
	if pd.err != nil {
		return pd.err
	}
	pd.dropPending(residue)
	e := &IncompleteError{Residue: new(big.Int).Set(residue)}
	for _, pr := range pd.pending {
		for i := 0; i < pr.count; i++ {
			e.Pending = append(e.Pending, new(big.Int).Set(pr.val))
		}
	}
	for _, en := range pd.primes {
		e.Partial = append(e.Partial, Factor{Prime: en.prime, Exponent: en.exponent, Certificate: en.cert})
	}
	sortFactors(e.Partial)
	if cause != nil {
		pd.err = fmt.Errorf("%w: %w", e, cause)
	} else {
		pd.err = e
	}
	return pd.err
}
