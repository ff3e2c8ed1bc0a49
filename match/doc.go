// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package match draws Secret Santa assignments.

Every participant with a non-blank name gives exactly one gift and receives
exactly one gift. Nobody draws themselves, excluded pairs never give to each
other in either direction, and forced pairs are always kept.

# Usage

Check the caller preconditions first, then draw:

	if err := match.Validate(participants, exclusions, forced); err != nil {
		// 400: duplicate names or IDs, too few people, contradictory forced pairs
	}
	matches, err := match.Generate(participants, exclusions, forced)
	if errors.Is(err, match.ErrInfeasible) {
		// ask the user to drop some exclusions or forced pairs
	}

# Algorithm

Forced assignments are seeded first. The remaining receivers are shuffled
(Fisher–Yates) and each remaining giver, in input order, picks uniformly
among the receivers still available to them. A giver with no candidate fails
the attempt; there is no backtracking. Up to DefaultMaxAttempts shuffled
attempts are made.

When every greedy attempt fails, an augmenting-path bipartite matching over
the same constraint graph runs with shuffled edge order. It finds an
assignment whenever one exists, so ErrInfeasible really means the
constraints cannot be met. WithExhaustiveFallback(false) turns it off.

Draws are deliberately not reproducible; pass WithRand for tests that need a
fixed seed.
*/
package match
