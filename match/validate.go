// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package match

import (
	"errors"
	"fmt"
	"strings"
)

// Precondition errors returned by Validate
var (
	ErrTooFewParticipants   = errors.New("at least 2 participants with a name are required")
	ErrDuplicateName        = errors.New("participant names must be unique")
	ErrDuplicateID          = errors.New("participant IDs must be unique")
	ErrTooManyForced        = errors.New("more forced assignments than participants")
	ErrForcedSelf           = errors.New("a participant cannot be forced to give to themselves")
	ErrForcedGiverReused    = errors.New("a participant can only be forced to give once")
	ErrForcedReceiverReused = errors.New("a participant can only be forced to receive once")
	ErrForcedExcluded       = errors.New("a forced assignment contradicts an exclusion")
)

// Validate checks the caller-side preconditions of Generate.
// References to unknown participants are not errors; Generate ignores them.
func Validate(participants []Participant, exclusions []Exclusion, forced []ForcedAssignment) error {
	// newPool keeps the first of a repeated ID and would drop the rest silently
	ids := make(map[string]bool, len(participants))
	for _, part := range participants {
		if !part.eligible() {
			continue
		}
		if ids[part.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, part.ID)
		}
		ids[part.ID] = true
	}

	p := newPool(participants)
	if len(p.order) < 2 {
		return ErrTooFewParticipants
	}

	seen := make(map[string]bool, len(p.order))
	for _, part := range p.order {
		key := strings.ToLower(strings.TrimSpace(part.Name))
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, strings.TrimSpace(part.Name))
		}
		seen[key] = true
	}

	if len(forced) > len(p.order) {
		return ErrTooManyForced
	}

	excluded := newExclusionSet(exclusions, p.byID)
	gave := make(map[string]bool, len(forced))
	received := make(map[string]bool, len(forced))
	for _, f := range forced {
		giver, gok := p.byID[f.GiverID]
		receiver, rok := p.byID[f.ReceiverID]
		if !gok || !rok {
			continue
		}
		if giver.ID == receiver.ID {
			return fmt.Errorf("%w: %q", ErrForcedSelf, giver.Name)
		}
		if gave[giver.ID] {
			return fmt.Errorf("%w: %q", ErrForcedGiverReused, giver.Name)
		}
		if received[receiver.ID] {
			return fmt.Errorf("%w: %q", ErrForcedReceiverReused, receiver.Name)
		}
		if excluded.excludes(giver.ID, receiver.ID) {
			return fmt.Errorf("%w: %q and %q", ErrForcedExcluded, giver.Name, receiver.Name)
		}
		gave[giver.ID] = true
		received[receiver.ID] = true
	}

	return nil
}
