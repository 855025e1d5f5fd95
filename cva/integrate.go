package cva

import "math"

// IntegrateCVA combines the expected positive exposure curve with the
// counterparty's default probability term structure:
//
//	CVA = (1 - recovery) * sum_t EPE(t) * PD(t) * DF(t)
//
// Survival uses the constant-hazard-rate approximation S(t) = exp(-spread*t).
// The marginal default probability for the first grid point is taken against
// a survival baseline of 1, so PD(0) = 0 on a grid starting at time zero.
// Discounting uses the flat risk-free rate, not the simulated paths.
func IntegrateCVA(epe, timeGrid []float64, credit CreditProfile, riskFreeRate float64) float64 {
	lgd := 1 - credit.Recovery

	total := 0.0
	prevSurvival := 1.0
	for i, t := range timeGrid {
		survival := math.Exp(-credit.Spread * t)
		defaultProb := prevSurvival - survival
		df := math.Exp(-riskFreeRate * t)
		total += epe[i] * defaultProb * df
		prevSurvival = survival
	}

	return lgd * total
}
