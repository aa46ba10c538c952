package service

import "pharma-match/internal/match/model"

// Score thresholds the cosine similarity between the seller vector and the
// vectorized predicted label into a confidence tier. matched=false means the
// caller must replace the prediction with Not Found; the score is clamped to
// 0 when the call site asks for it (single lookup does, batch does not).
// Tier boundaries are strict: exactly 0.8 is Medium and exactly 0.6 is Low.
func Score(sellerVec, predictedVec Vector, opt model.Options) (score float64, conf model.Confidence, matched bool) {
	score = Cosine(sellerVec, predictedVec)

	if score < opt.MinScore {
		if opt.ClampUnmatched {
			score = 0.0
		}
		return score, model.ConfidenceUnknown, false
	}

	switch {
	case score > opt.HighTier:
		conf = model.ConfidenceHigh
	case score > opt.MediumTier:
		conf = model.ConfidenceMedium
	default:
		conf = model.ConfidenceLow
	}
	return score, conf, true
}
