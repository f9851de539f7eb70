package core

import (
	"fmt"
	"math/bits"
)

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodWorried Mood = "worried"
	MoodSad     Mood = "sad"
)

type (
	Mood string

	// PetStatus is the gamified view of financial health. It is derived,
	// never stored: recomputing it from the current totals after every
	// mutation keeps it consistent with the ledger.
	PetStatus struct {
		Name    string `json:"name"`
		Mood    Mood   `json:"mood"`
		Message string `json:"message"`
	}
)

// DerivePet computes the pet state from cumulative expense cents and the
// budget ceiling. It is a pure function of (spent, budget); the pet name
// only decorates the message.
//
// Boundary ratios belong to the higher-concern band so the mood degrades
// monotonically as spending approaches and crosses the budget:
//
//	spent/budget < 0.5          -> happy
//	0.5 <= spent/budget < 0.9   -> neutral
//	0.9 <= spent/budget < 1.0   -> worried
//	spent/budget >= 1.0         -> sad
//
// The comparisons are done on cents to keep the boundaries exact.
func DerivePet(spentCents, budgetCents int64, name string) PetStatus {
	if budgetCents <= 0 {
		return PetStatus{
			Name:    name,
			Mood:    MoodNeutral,
			Message: fmt.Sprintf("%s is waiting. Please set up your budget first!", name),
		}
	}

	switch {
	case spentCents >= budgetCents:
		over := Money{Cents: spentCents - budgetCents}
		return PetStatus{
			Name:    name,
			Mood:    MoodSad,
			Message: fmt.Sprintf("Careful! You've gone over budget by %s.", over),
		}
	case ratioAtLeast(spentCents, budgetCents, 9, 10):
		return PetStatus{
			Name:    name,
			Mood:    MoodWorried,
			Message: fmt.Sprintf("%s is getting nervous, you're almost at your limit.", name),
		}
	case ratioAtLeast(spentCents, budgetCents, 1, 2):
		return PetStatus{
			Name:    name,
			Mood:    MoodNeutral,
			Message: "Steady now, you're approaching your budget.",
		}
	default:
		return PetStatus{
			Name:    name,
			Mood:    MoodHappy,
			Message: "Purrfect! Your spending looks healthy.",
		}
	}
}

// ratioAtLeast reports spent/budget >= num/den. The cross products are
// taken in 128 bits so the comparison stays exact for any spend and
// budget an int64 can hold. Both inputs must be non-negative.
func ratioAtLeast(spentCents, budgetCents int64, num, den uint64) bool {
	shi, slo := bits.Mul64(uint64(spentCents), den)
	bhi, blo := bits.Mul64(uint64(budgetCents), num)
	return shi > bhi || (shi == bhi && slo >= blo)
}
