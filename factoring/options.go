package factoring

import (
	"github.com/corrodedHash/facto/internal/smallprimes"
)

// Config collects the tunables of a factorization call. The zero value is
// not usable; DefaultConfig fills in the defaults and Options adjust it.
type Config struct {
	// TrialBound is the inclusive small-prime trial division limit.
	TrialBound uint64
	// Witnesses is the Fermat base count used by the oracle above the
	// deterministic bound.
	Witnesses int
	// RhoRestarts caps pseudo-random polynomial restarts of Pollard rho.
	RhoRestarts int
	// SmoothnessSchedule lists escalating Pollard p-1 bounds.
	SmoothnessSchedule []uint64
	// OperationBudget caps the total work of the call; <= 0 is unlimited.
	OperationBudget int64
	// Parallelism is the number of residues resolved concurrently; <= 1
	// keeps the driver sequential.
	Parallelism int
	// Events receives progress callbacks; nil means none.
	Events EventSubscriber
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() *Config {
	return &Config{
		TrialBound:         1 << 16,
		Witnesses:          0, // oracle default
		RhoRestarts:        8,
		SmoothnessSchedule: []uint64{1_000, 10_000, 100_000},
		OperationBudget:    0,
		Parallelism:        1,
		Events:             NopSubscriber{},
	}
}

// Option configures a factorization call.
type Option func(*Config)

// WithTrialBound sets the inclusive trial division bound. Zero and bounds
// above the sieve table limit mean the full table; the oracle and the trial
// stage must agree on the bound or a divisor the oracle reports could never
// be stripped.
func WithTrialBound(bound uint64) Option {
	return func(c *Config) {
		if bound == 0 || bound > smallprimes.Max() {
			bound = smallprimes.Max()
		}
		c.TrialBound = bound
	}
}

// WithWitnesses sets the Fermat witness base count used above the
// deterministic bound.
func WithWitnesses(count int) Option {
	return func(c *Config) { c.Witnesses = count }
}

// WithRhoRestarts caps the Pollard rho restart count per residue.
func WithRhoRestarts(count int) Option {
	return func(c *Config) { c.RhoRestarts = count }
}

// WithSmoothnessSchedule sets the escalating Pollard p-1 bounds.
func WithSmoothnessSchedule(bounds ...uint64) Option {
	return func(c *Config) { c.SmoothnessSchedule = bounds }
}

// WithBudget caps the overall operation count of the call.
func WithBudget(ops int64) Option {
	return func(c *Config) { c.OperationBudget = ops }
}

// WithParallelism resolves up to n independent residues concurrently.
func WithParallelism(n int) Option {
	return func(c *Config) { c.Parallelism = n }
}

// WithEvents registers a progress event subscriber.
func WithEvents(s EventSubscriber) Option {
	return func(c *Config) {
		if s == nil {
			s = NopSubscriber{}
		}
		c.Events = s
	}
}
