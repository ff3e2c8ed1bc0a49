// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package match

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		participants []Participant
		exclusions   []Exclusion
		forced       []ForcedAssignment
		wantErr      error
	}{
		{
			name:         "valid group",
			participants: people("A", "B", "C"),
			exclusions:   []Exclusion{{P1: "A", P2: "B"}},
			forced:       []ForcedAssignment{{GiverID: "A", ReceiverID: "C"}},
		},
		{
			name:         "one participant",
			participants: people("A"),
			wantErr:      ErrTooFewParticipants,
		},
		{
			name: "blank names do not count",
			participants: []Participant{
				{ID: "1", Name: "Ann"},
				{ID: "2", Name: "  "},
			},
			wantErr: ErrTooFewParticipants,
		},
		{
			name: "duplicate names ignoring case and spaces",
			participants: []Participant{
				{ID: "1", Name: "Ann"},
				{ID: "2", Name: " ann "},
				{ID: "3", Name: "Ben"},
			},
			wantErr: ErrDuplicateName,
		},
		{
			name: "duplicate ids",
			participants: []Participant{
				{ID: "x", Name: "Ann"},
				{ID: "x", Name: "Ben"},
				{ID: "y", Name: "Cat"},
			},
			wantErr: ErrDuplicateID,
		},
		{
			name: "repeated id on a blank name is ignored",
			participants: []Participant{
				{ID: "x", Name: "Ann"},
				{ID: "x", Name: " "},
				{ID: "y", Name: "Cat"},
			},
		},
		{
			name:         "too many forced pairs",
			participants: people("A", "B"),
			forced: []ForcedAssignment{
				{GiverID: "A", ReceiverID: "B"},
				{GiverID: "B", ReceiverID: "A"},
				{GiverID: "x", ReceiverID: "y"},
			},
			wantErr: ErrTooManyForced,
		},
		{
			name:         "forced to self",
			participants: people("A", "B"),
			forced:       []ForcedAssignment{{GiverID: "A", ReceiverID: "A"}},
			wantErr:      ErrForcedSelf,
		},
		{
			name:         "giver forced twice",
			participants: people("A", "B", "C"),
			forced: []ForcedAssignment{
				{GiverID: "A", ReceiverID: "B"},
				{GiverID: "A", ReceiverID: "C"},
			},
			wantErr: ErrForcedGiverReused,
		},
		{
			name:         "receiver forced twice",
			participants: people("A", "B", "C"),
			forced: []ForcedAssignment{
				{GiverID: "A", ReceiverID: "C"},
				{GiverID: "B", ReceiverID: "C"},
			},
			wantErr: ErrForcedReceiverReused,
		},
		{
			name:         "forced pair excluded",
			participants: people("A", "B", "C"),
			exclusions:   []Exclusion{{P1: "B", P2: "A"}},
			forced:       []ForcedAssignment{{GiverID: "A", ReceiverID: "B"}},
			wantErr:      ErrForcedExcluded,
		},
		{
			name:         "dangling references are tolerated",
			participants: people("A", "B", "C"),
			exclusions:   []Exclusion{{P1: "A", P2: "gone"}},
			forced:       []ForcedAssignment{{GiverID: "gone", ReceiverID: "A"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.participants, tt.exclusions, tt.forced)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
