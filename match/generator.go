// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package match

import (
	"errors"
	"math/rand/v2"
)

// DefaultMaxAttempts is how many shuffled greedy walks are tried before giving up
const DefaultMaxAttempts = 100

// ErrInfeasible means no complete assignment could be found for the constraints.
// It is an expected outcome; callers should ask the user to relax exclusions or forced pairs.
var ErrInfeasible = errors.New("too many constraints: no valid assignment found")

// Generator draws constrained random assignments.
// A Generator without WithRand is safe for concurrent use.
type Generator struct {
	maxAttempts int
	rng         *rand.Rand
	exhaustive  bool
}

// Option configures a Generator
type Option func(*Generator)

// WithMaxAttempts sets the greedy retry ceiling. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithRand makes the generator draw from r instead of the global source.
// r is not safe for concurrent use, so neither is the resulting Generator.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// WithExhaustiveFallback controls whether a complete bipartite matching is
// attempted once the greedy retries are used up. Enabled by default.
func WithExhaustiveFallback(on bool) Option {
	return func(g *Generator) {
		g.exhaustive = on
	}
}

// NewGenerator returns a Generator with DefaultMaxAttempts and the exhaustive fallback on.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		maxAttempts: DefaultMaxAttempts,
		exhaustive:  true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate draws an assignment with a default Generator.
func Generate(participants []Participant, exclusions []Exclusion, forced []ForcedAssignment) ([]Match, error) {
	return NewGenerator().Generate(participants, exclusions, forced)
}

// Generate assigns every participant with a non-blank name exactly one
// receiver, honouring exclusions and forced assignments.
//
// Forced matches come first in the result, followed by the drawn matches in
// participant order. The only error is ErrInfeasible; there is no partial result.
func (g *Generator) Generate(participants []Participant, exclusions []Exclusion, forced []ForcedAssignment) ([]Match, error) {
	p := newPool(participants)
	if len(p.order) < 2 || len(forced) > len(p.order) {
		return nil, ErrInfeasible
	}

	excluded := newExclusionSet(exclusions, p.byID)

	seeded, givers, receivers, err := seedForced(p, forced, excluded)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if drawn, ok := g.attempt(givers, receivers, excluded); ok {
			return append(seeded, drawn...), nil
		}
	}

	if !g.exhaustive {
		return nil, ErrInfeasible
	}

	drawn, ok := g.augment(givers, receivers, excluded)
	if !ok {
		return nil, ErrInfeasible
	}
	return append(seeded, drawn...), nil
}

// pool is the active participants in input order
type pool struct {
	order []Participant
	byID  map[string]Participant
}

func newPool(participants []Participant) pool {
	p := pool{
		order: make([]Participant, 0, len(participants)),
		byID:  make(map[string]Participant, len(participants)),
	}
	for _, part := range participants {
		if !part.eligible() {
			continue
		}
		if _, dup := p.byID[part.ID]; dup {
			continue
		}
		p.byID[part.ID] = part
		p.order = append(p.order, part)
	}
	return p
}

// seedForced turns forced assignments into matches and returns who is left to draw
func seedForced(p pool, forced []ForcedAssignment, excluded exclusionSet) ([]Match, []Participant, []Participant, error) {
	gave := make(map[string]bool, len(forced))
	received := make(map[string]bool, len(forced))
	seeded := make([]Match, 0, len(p.order))

	for _, f := range forced {
		giver, ok := p.byID[f.GiverID]
		if !ok {
			continue
		}
		receiver, ok := p.byID[f.ReceiverID]
		if !ok {
			continue
		}
		if giver.ID == receiver.ID || gave[giver.ID] || received[receiver.ID] {
			continue
		}
		if excluded.excludes(giver.ID, receiver.ID) {
			return nil, nil, nil, ErrInfeasible
		}
		gave[giver.ID] = true
		received[receiver.ID] = true
		seeded = append(seeded, Match{Giver: giver, Receiver: receiver})
	}

	var givers, receivers []Participant
	for _, part := range p.order {
		if !gave[part.ID] {
			givers = append(givers, part)
		}
		if !received[part.ID] {
			receivers = append(receivers, part)
		}
	}
	return seeded, givers, receivers, nil
}

// attempt runs one shuffled greedy walk without backtracking
func (g *Generator) attempt(givers, receivers []Participant, excluded exclusionSet) ([]Match, bool) {
	available := make([]Participant, len(receivers))
	copy(available, receivers)
	shuffle(available, g.intn)

	matches := make([]Match, 0, len(givers))
	candidates := make([]int, 0, len(available))
	for _, giver := range givers {
		candidates = candidates[:0]
		for i, r := range available {
			if excluded.allowed(giver.ID, r.ID) {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			return nil, false
		}

		pick := candidates[g.intn(len(candidates))]
		matches = append(matches, Match{Giver: giver, Receiver: available[pick]})
		available = append(available[:pick], available[pick+1:]...)
	}
	return matches, true
}

// augment finds a perfect matching with augmenting paths (Kuhn's algorithm).
// Edge lists and giver order are shuffled so the result is still random.
// A false return proves no valid assignment exists.
func (g *Generator) augment(givers, receivers []Participant, excluded exclusionSet) ([]Match, bool) {
	adj := make([][]int, len(givers))
	for gi, giver := range givers {
		for ri, r := range receivers {
			if excluded.allowed(giver.ID, r.ID) {
				adj[gi] = append(adj[gi], ri)
			}
		}
		shuffle(adj[gi], g.intn)
	}

	owner := make([]int, len(receivers))
	for i := range owner {
		owner[i] = -1
	}

	order := make([]int, len(givers))
	for i := range order {
		order[i] = i
	}
	shuffle(order, g.intn)

	seen := make([]bool, len(receivers))
	for _, gi := range order {
		clear(seen)
		if !tryAssign(gi, adj, owner, seen) {
			return nil, false
		}
	}

	assigned := make([]int, len(givers))
	for ri, gi := range owner {
		if gi >= 0 {
			assigned[gi] = ri
		}
	}

	matches := make([]Match, len(givers))
	for gi, giver := range givers {
		matches[gi] = Match{Giver: giver, Receiver: receivers[assigned[gi]]}
	}
	return matches, true
}

func tryAssign(gi int, adj [][]int, owner []int, seen []bool) bool {
	for _, ri := range adj[gi] {
		if seen[ri] {
			continue
		}
		seen[ri] = true
		if owner[ri] < 0 || tryAssign(owner[ri], adj, owner, seen) {
			owner[ri] = gi
			return true
		}
	}
	return false
}

func (g *Generator) intn(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return rand.IntN(n)
}

// shuffle is Fisher–Yates over s
func shuffle[T any](s []T, intn func(int) int) {
	for i := len(s) - 1; i > 0; i-- {
		j := intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
