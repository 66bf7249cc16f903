package domain

import "time"

// ReviewEase is the review-outcome signal fed back to the external
// scheduler. Valid values are 1 (again) through 4 (easy); the scheduler
// must never see anything outside that range.
type ReviewEase int

// Review outcome values, matching the host application's answer buttons.
const (
	EaseAgain ReviewEase = 1
	EaseHard  ReviewEase = 2
	EaseGood  ReviewEase = 3
	EaseEasy  ReviewEase = 4
)

// Validate checks that the ease is within the accepted 1-4 range.
func (e ReviewEase) Validate() error {
	if e < EaseAgain || e > EaseEasy {
		return ErrInvalidEase
	}
	return nil
}

// String returns the answer-button label for the ease value.
func (e ReviewEase) String() string {
	switch e {
	case EaseAgain:
		return "again"
	case EaseHard:
		return "hard"
	case EaseGood:
		return "good"
	case EaseEasy:
		return "easy"
	default:
		return "unknown"
	}
}

// ReviewType classifies a review log entry the way the host application's
// revlog does.
type ReviewType int

// Review log entry types, in the host application's encoding.
const (
	ReviewTypeLearn ReviewType = iota
	ReviewTypeReview
	ReviewTypeRelearn
	ReviewTypeFiltered
	ReviewTypeManual
)

// String returns a human-readable name for the review type.
func (t ReviewType) String() string {
	switch t {
	case ReviewTypeLearn:
		return "Learn"
	case ReviewTypeReview:
		return "Review"
	case ReviewTypeRelearn:
		return "Relearn"
	case ReviewTypeFiltered:
		return "Filtered"
	case ReviewTypeManual:
		return "Manual"
	default:
		return "Unknown"
	}
}

// Review is one entry from the collection's review log.
type Review struct {
	CardID     int64      `json:"card_id"`
	ReviewedAt time.Time  `json:"reviewed_at"`
	Ease       ReviewEase `json:"ease"`

	// Interval is the interval scheduled by this review, in days.
	// Negative values are the host application's encoding for intervals
	// measured in seconds (learning steps).
	Interval     int `json:"interval"`
	LastInterval int `json:"last_interval"`

	// Factor is the ease factor after the review, in permille.
	Factor int `json:"factor"`

	// TakenMillis is the time spent answering, in milliseconds.
	TakenMillis int64 `json:"taken_millis"`

	Type ReviewType `json:"type"`
}

// FactorPercent returns the post-review ease factor as a percentage.
func (r *Review) FactorPercent() float64 {
	return float64(r.Factor) / 10
}

// TakenSeconds returns the answer time in seconds.
func (r *Review) TakenSeconds() float64 {
	return float64(r.TakenMillis) / 1000
}
