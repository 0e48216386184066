package geocoding

// Candidate scoring weights. Base score is the provider relevance scaled to
// ~100; bonuses reward precision, the road penalty punishes an imprecise match
// when the input address promised a house number.
const (
	relevanceScale      = 100.0
	houseNumberBonus    = 300.0
	buildingTypeBonus   = 150.0
	officeTypeBonus     = 120.0
	pointPrecisionBonus = 50.0
	roadTypePenalty     = -100.0
)

func scoreCandidate(c Candidate, inputHasHouseNumber bool) float64 {
	score := c.Relevance * relevanceScale

	if c.HouseNumber != "" {
		score += houseNumberBonus
	}

	switch c.Class {
	case "building", "house":
		score += buildingTypeBonus
	case "office", "amenity":
		score += officeTypeBonus
	case "highway", "road":
		if inputHasHouseNumber {
			score += roadTypePenalty
		}
	}

	// A node is a precise point; ways and relations are areas.
	if c.OSMType == "node" {
		score += pointPrecisionBonus
	}

	return score
}

// bestCandidate returns the argmax of scoreCandidate, ties broken by
// first-seen order.
func bestCandidate(candidates []Candidate, inputHasHouseNumber bool) Candidate {
	best := candidates[0]
	bestScore := scoreCandidate(best, inputHasHouseNumber)

	for _, c := range candidates[1:] {
		if s := scoreCandidate(c, inputHasHouseNumber); s > bestScore {
			best = c
			bestScore = s
		}
	}
	return best
}
