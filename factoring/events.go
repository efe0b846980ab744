package factoring

import "math/big"

// EventSubscriber receives callbacks as the driver makes progress. Values
// passed to callbacks are borrowed; implementations copy what they keep.
type EventSubscriber interface {
	// Split is called when n has been decomposed into parts: primes are
	// proven prime, composites proven composite, unknown not yet tested.
	Split(n *big.Int, primes, composites, unknown []*big.Int)
	// Prime is called when a residue is proven or presumed prime.
	Prime(p *big.Int)
	// Composite is called when a residue is proven composite.
	Composite(c *big.Int)
}

// NopSubscriber is the default subscriber, for when no event callbacks are
// required.
type NopSubscriber struct{}

func (NopSubscriber) Split(*big.Int, []*big.Int, []*big.Int, []*big.Int) {}
func (NopSubscriber) Prime(*big.Int)                                     {}
func (NopSubscriber) Composite(*big.Int)                                 {}
