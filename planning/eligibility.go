package planning

// SpousalBenefitThresholdMonths is the marriage duration required for
// Social Security spousal-benefit eligibility: 10 years.
const SpousalBenefitThresholdMonths = 120

// Eligibility is the result of comparing an elapsed duration against a
// policy threshold.
type Eligibility struct {
	Eligible bool
	// Percent is progress toward the threshold, clamped to [0, 100].
	Percent float64
}

// EvaluateEligibility compares elapsed months against a threshold.
// Pure and deterministic; elapsed beyond the threshold caps at 100%.
func EvaluateEligibility(totalMonths, thresholdMonths int) Eligibility {
	if thresholdMonths <= 0 {
		return Eligibility{Eligible: true, Percent: 100}
	}
	if totalMonths <= 0 {
		return Eligibility{Eligible: false, Percent: 0}
	}
	pct := float64(totalMonths) / float64(thresholdMonths) * 100
	if pct > 100 {
		pct = 100
	}
	return Eligibility{
		Eligible: totalMonths >= thresholdMonths,
		Percent:  pct,
	}
}

// SpousalEligibility evaluates against the Social Security spousal-benefit
// threshold.
func SpousalEligibility(totalMonths int) Eligibility {
	return EvaluateEligibility(totalMonths, SpousalBenefitThresholdMonths)
}
