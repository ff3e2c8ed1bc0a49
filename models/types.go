// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/giftswap/match"
)

// Exchange status constants
const (
	StatusDraft = "draft"
	StatusDrawn = "drawn"
)

// Baby pool status constants
const (
	PoolOpen   = "open"
	PoolClosed = "closed"
)

// Baby sex values
const (
	SexBoy  = "boy"
	SexGirl = "girl"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// Stateless matching

type MatchRequest struct {
	Title             string                   `json:"title" validate:"max=120"`
	Participants      []match.Participant      `json:"participants" validate:"max=1000"`
	Exclusions        []match.Exclusion        `json:"exclusions" validate:"max=10000"`
	ForcedAssignments []match.ForcedAssignment `json:"forced_assignments" validate:"max=1000"`
}

type MatchResponse struct {
	Matches   []match.Match `json:"matches"`
	ShareCode string        `json:"share_code"`
	ShareURL  string        `json:"share_url"`
}

type SharedPairResponse struct {
	Title     string `json:"title,omitempty"`
	Giver     string `json:"giver"`
	Receiver  string `json:"receiver"`
	Interests string `json:"interests,omitempty"`
}

type SharedSummaryResponse struct {
	Title        string   `json:"title,omitempty"`
	Participants []string `json:"participants"`
}

// Exchanges

type CreateExchangeRequest struct {
	Title             string                   `json:"title" validate:"required,max=120"`
	Budget            string                   `json:"budget" validate:"max=60"`
	OrganizerName     string                   `json:"organizer_name" validate:"required,max=80"`
	Participants      []match.Participant      `json:"participants" validate:"max=1000"`
	Exclusions        []match.Exclusion        `json:"exclusions" validate:"max=10000"`
	ForcedAssignments []match.ForcedAssignment `json:"forced_assignments" validate:"max=1000"`
}

// UpdateExchangeRequest replaces the participant list and rules; empty title and budget keep the old values
type UpdateExchangeRequest struct {
	Title             string                   `json:"title" validate:"max=120"`
	Budget            string                   `json:"budget" validate:"max=60"`
	Participants      []match.Participant      `json:"participants" validate:"max=1000"`
	Exclusions        []match.Exclusion        `json:"exclusions" validate:"max=10000"`
	ForcedAssignments []match.ForcedAssignment `json:"forced_assignments" validate:"max=1000"`
}

type CreateExchangeResponse struct {
	ExchangeID string `json:"exchange_id"`
	AdminKey   string `json:"admin_key"`
	ShareSlug  string `json:"share_slug"`
}

type RevealLink struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	RevealToken   string `json:"reveal_token"`
	RevealURL     string `json:"reveal_url"`
}

type DrawResponse struct {
	DrawnAt time.Time    `json:"drawn_at"`
	Links   []RevealLink `json:"links"`
}

type RevealResponse struct {
	ExchangeTitle string            `json:"exchange_title"`
	Budget        string            `json:"budget,omitempty"`
	Giver         match.Participant `json:"giver"`
	Receiver      match.Participant `json:"receiver"`
}

// StoredMatch is a drawn pair kept by participant ID
type StoredMatch struct {
	GiverID    string `json:"giver_id"`
	ReceiverID string `json:"receiver_id"`
}

// Exchange is the JSON document kept in the blob store
type Exchange struct {
	ID                string                   `json:"id"`
	Title             string                   `json:"title"`
	Budget            string                   `json:"budget,omitempty"`
	OrganizerName     string                   `json:"organizer_name"`
	ShareSlug         string                   `json:"share_slug"`
	Status            string                   `json:"status"`
	Participants      []match.Participant      `json:"participants"`
	Exclusions        []match.Exclusion        `json:"exclusions"`
	ForcedAssignments []match.ForcedAssignment `json:"forced_assignments"`
	Matches           []StoredMatch            `json:"matches,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
	DrawnAt           *time.Time               `json:"drawn_at,omitempty"`
}

// Participant looks up a participant by ID
func (e *Exchange) Participant(id string) (match.Participant, bool) {
	for _, p := range e.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return match.Participant{}, false
}

// Kudos boards

type CreateBoardRequest struct {
	Title         string `json:"title" validate:"required,max=120"`
	RecipientName string `json:"recipient_name" validate:"required,max=80"`
	CreatorName   string `json:"creator_name" validate:"required,max=80"`
}

type CreateBoardResponse struct {
	BoardID  string `json:"board_id"`
	AdminKey string `json:"admin_key"`
	BoardURL string `json:"board_url"`
}

type PostKudosRequest struct {
	Author  string `json:"author" validate:"required,max=80"`
	Message string `json:"message" validate:"required,max=500"`
}

type PostKudosResponse struct {
	KudosID string `json:"kudos_id"`
}

type Board struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	RecipientName string    `json:"recipient_name"`
	CreatorName   string    `json:"creator_name"`
	CreatedAt     time.Time `json:"created_at"`
}

type Kudos struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	IPHash    *string   `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
	PostedAgo string    `json:"posted_ago"`
}

type BoardWithKudos struct {
	Board Board   `json:"board"`
	Kudos []Kudos `json:"kudos"`
}

// Baby pools

type CreatePoolRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	ParentNames string `json:"parent_names" validate:"required,max=120"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

type CreatePoolResponse struct {
	PoolID   string `json:"pool_id"`
	AdminKey string `json:"admin_key"`
}

type SubmitGuessRequest struct {
	Name        string `json:"name" validate:"required,max=80"`
	BirthDate   string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	WeightGrams int    `json:"weight_grams" validate:"required,min=300,max=7000"`
	Sex         string `json:"sex" validate:"required,oneof=boy girl"`
}

type SubmitGuessResponse struct {
	GuessID string `json:"guess_id"`
}

type ClosePoolRequest struct {
	BirthDate   string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	WeightGrams int    `json:"weight_grams" validate:"required,min=300,max=7000"`
	Sex         string `json:"sex" validate:"required,oneof=boy girl"`
}

type ClosePoolResponse struct {
	ClosedAt time.Time `json:"closed_at"`
	Results  []Guess   `json:"results"`
}

type Pool struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	ParentNames       string     `json:"parent_names"`
	DueDate           string     `json:"due_date"`
	Status            string     `json:"status"`
	ActualBirthDate   *string    `json:"actual_birth_date,omitempty"`
	ActualWeightGrams *int       `json:"actual_weight_grams,omitempty"`
	ActualSex         *string    `json:"actual_sex,omitempty"`
	ClosedAt          *time.Time `json:"closed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type Guess struct {
	ID          string    `json:"id"`
	PoolID      string    `json:"pool_id"`
	Name        string    `json:"name"`
	BirthDate   string    `json:"birth_date"`
	WeightGrams int       `json:"weight_grams"`
	Sex         string    `json:"sex"`
	CreatedAt   time.Time `json:"created_at"`

	// Set once the pool is closed
	Rank     int  `json:"rank,omitempty"` // 1-indexed
	DaysOff  *int `json:"days_off,omitempty"`
	GramsOff *int `json:"grams_off,omitempty"`
	SexRight bool `json:"sex_right,omitempty"`
}

type PoolWithGuesses struct {
	Pool    Pool    `json:"pool"`
	Guesses []Guess `json:"guesses"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
