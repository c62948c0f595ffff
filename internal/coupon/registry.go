package coupon

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Registry resolves coupon codes to discount rules. Lookups go through a
// bloom filter first so unknown codes are rejected without touching the map;
// the filter is sized generously to keep the false-positive rate negligible.
type Registry struct {
	mu     sync.RWMutex
	rules  map[string]Rule
	filter *bloom.BloomFilter
}

// NewRegistry creates a registry holding the given rules.
func NewRegistry(rules ...Rule) *Registry {
	n := uint(len(rules))
	if n == 0 {
		n = 1
	}
	r := &Registry{
		rules:  make(map[string]Rule, len(rules)),
		filter: bloom.NewWithEstimates(n*16, 0.001),
	}
	for _, rule := range rules {
		r.rules[rule.Code()] = rule
		r.filter.AddString(rule.Code())
	}
	return r
}

// DefaultRegistry returns the store's standing offers.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewPercentOff("TESCO10", "10% off orders over 500", 10, 500),
		NewAmountOff("FLAT50", "50 off orders over 300", 50, 300),
		NewBuyOneGetOne("BOGO-BREAD", "Buy one bread, get one free", "bread"),
	)
}

// Resolve returns the rule for a code, or nil when the code is unknown.
// Matching is case-insensitive and ignores surrounding whitespace; an
// unknown code is not an error, the caller decides how to report it.
func (r *Registry) Resolve(code string) Rule {
	key := normalize(code)
	if key == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.filter.TestString(key) {
		return nil
	}
	return r.rules[key]
}

// Register adds a rule, replacing any existing rule with the same code.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[rule.Code()] = rule
	r.filter.AddString(rule.Code())
}

// Stats returns statistics about the registered coupons.
func (r *Registry) Stats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.rules))
	for code := range r.rules {
		codes = append(codes, code)
	}

	return map[string]interface{}{
		"total_codes": len(r.rules),
		"codes":       codes,
	}
}
