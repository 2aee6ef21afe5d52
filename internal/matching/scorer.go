package matching

import "contact-dedupe/internal/contact"

// Weights defines how much each field contributes to the composite score.
// The four weights sum to 1.
type Weights struct {
	Email      float64
	Name       float64
	PostalCode float64
	Address    float64
}

// ContactWeights are the fixed weights used for contact deduplication.
var ContactWeights = Weights{
	Email:      0.6,
	Name:       0.2,
	PostalCode: 0.1,
	Address:    0.1,
}

// Breakdown holds the per-field similarities of a pair and their weighted total.
type Breakdown struct {
	Name       float64 `json:"name"`
	Email      float64 `json:"email"`
	PostalCode float64 `json:"postal_code"`
	Address    float64 `json:"address"`
	Total      float64 `json:"total"`
}

// Total combines per-field similarities into one score in [0, 1].
func (w Weights) Total(b Breakdown) float64 {
	total := b.Email*w.Email + b.Name*w.Name + b.PostalCode*w.PostalCode + b.Address*w.Address
	return min(max(total, 0), 1)
}

// ScorePair compares origin against candidate field by field.
//
// Email and postal code only count when present on both records; the address
// scores 0 unless both sides have one. Names are always compared, so two
// nameless records score 1.0 on that field.
func ScorePair(origin, candidate contact.Record) Breakdown {
	b := Breakdown{
		Name:       EditSimilarity(origin.FullName(), candidate.FullName()),
		Email:      ExactSimilarity(origin.Email, candidate.Email, false),
		PostalCode: ExactSimilarity(origin.PostalCode, candidate.PostalCode, true),
	}

	if !IsBlank(origin.Address) && !IsBlank(candidate.Address) {
		b.Address = EditSimilarity(origin.Address, candidate.Address)
	}

	b.Total = ContactWeights.Total(b)
	return b
}

// Score returns the weighted composite score of a pair.
func Score(origin, candidate contact.Record) float64 {
	return ScorePair(origin, candidate).Total
}
