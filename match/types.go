// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package match

import "strings"

// Participant is someone taking part in an exchange.
// Interests is carried through untouched.
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Interests string `json:"interests,omitempty"`
}

// Exclusion forbids P1 and P2 from giving to each other, in either direction.
type Exclusion struct {
	P1 string `json:"p1"`
	P2 string `json:"p2"`
}

// ForcedAssignment pins a giver to a receiver.
type ForcedAssignment struct {
	GiverID    string `json:"giver_id"`
	ReceiverID string `json:"receiver_id"`
}

// Match is one giver → receiver pair of an assignment.
type Match struct {
	Giver    Participant `json:"giver"`
	Receiver Participant `json:"receiver"`
}

// eligible reports whether the participant can be put in the pool
func (p Participant) eligible() bool {
	return strings.TrimSpace(p.Name) != ""
}

// pairKey is the order-independent key of an exclusion
type pairKey struct {
	lo, hi string
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// exclusionSet holds the deduplicated, symmetric exclusions between active participants.
type exclusionSet map[pairKey]struct{}

func newExclusionSet(exclusions []Exclusion, active map[string]Participant) exclusionSet {
	set := make(exclusionSet, len(exclusions))
	for _, e := range exclusions {
		if e.P1 == e.P2 {
			continue
		}
		// Stale ids from the client are ignored
		if _, ok := active[e.P1]; !ok {
			continue
		}
		if _, ok := active[e.P2]; !ok {
			continue
		}
		set[newPairKey(e.P1, e.P2)] = struct{}{}
	}
	return set
}

func (s exclusionSet) excludes(a, b string) bool {
	_, ok := s[newPairKey(a, b)]
	return ok
}

// allowed reports whether giver may give to receiver
func (s exclusionSet) allowed(giver, receiver string) bool {
	return giver != receiver && !s.excludes(giver, receiver)
}
