// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/danielhkuo/giftswap/models"
)

// Outcome is what actually happened, used to score guesses
type Outcome struct {
	BirthDate   time.Time
	WeightGrams int
	Sex         string
}

// ParseOutcome reads an outcome from its wire form
func ParseOutcome(birthDate string, weightGrams int, sex string) (Outcome, error) {
	d, err := time.Parse(models.DateLayout, birthDate)
	if err != nil {
		return Outcome{}, fmt.Errorf("invalid birth date %q: %w", birthDate, err)
	}
	return Outcome{BirthDate: d, WeightGrams: weightGrams, Sex: sex}, nil
}

// RankGuesses scores every guess against the outcome and sorts best first.
//
// Ordering is lexicographic: fewest days off, then fewest grams off, then the
// right sex, then the earliest guess. Guesses equal on the first three keys
// share a rank.
func RankGuesses(outcome Outcome, guesses []models.Guess) ([]models.Guess, error) {
	ranked := make([]models.Guess, len(guesses))
	copy(ranked, guesses)

	for i := range ranked {
		g := &ranked[i]
		d, err := time.Parse(models.DateLayout, g.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("guess %s has invalid birth date: %w", g.ID, err)
		}
		days := absInt(int(d.Sub(outcome.BirthDate).Hours() / 24))
		grams := absInt(g.WeightGrams - outcome.WeightGrams)
		g.DaysOff = &days
		g.GramsOff = &grams
		g.SexRight = g.Sex == outcome.Sex
	}

	slices.SortStableFunc(ranked, func(a, b models.Guess) int {
		if c := compareScore(a, b); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	for i := range ranked {
		if i > 0 && compareScore(ranked[i-1], ranked[i]) == 0 {
			ranked[i].Rank = ranked[i-1].Rank
		} else {
			ranked[i].Rank = i + 1
		}
	}

	return ranked, nil
}

func compareScore(a, b models.Guess) int {
	if c := cmp.Compare(*a.DaysOff, *b.DaysOff); c != 0 {
		return c
	}
	if c := cmp.Compare(*a.GramsOff, *b.GramsOff); c != 0 {
		return c
	}
	switch {
	case a.SexRight == b.SexRight:
		return 0
	case a.SexRight:
		return -1
	default:
		return 1
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
