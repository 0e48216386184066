package contract

import "time"

// Confidence weights over the six tracked extraction outcomes. Purely
// additive and order-independent; the sum is capped at 100.
const (
	confidenceContractNumber = 15
	confidenceCustomerName   = 20
	confidenceStartDate      = 15
	confidenceEndDate        = 15
	confidenceGuardCount     = 20
	confidenceSchedules      = 15

	confidenceMax = 100
)

// ConfidenceScore estimates extraction completeness as an integer in [0,100].
// It is not a probability: it only reflects which fields were found.
func ConfidenceScore(
	contractNumber string,
	customerName string,
	startDate, endDate *time.Time,
	guardsRequired int,
	scheduleCount int,
) int {
	score := 0
	if contractNumber != "" {
		score += confidenceContractNumber
	}
	if customerName != "" {
		score += confidenceCustomerName
	}
	if startDate != nil {
		score += confidenceStartDate
	}
	if endDate != nil {
		score += confidenceEndDate
	}
	if guardsRequired > 0 {
		score += confidenceGuardCount
	}
	if scheduleCount > 0 {
		score += confidenceSchedules
	}
	if score > confidenceMax {
		score = confidenceMax
	}
	return score
}
