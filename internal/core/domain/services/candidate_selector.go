package services

import (
	"sort"

	"geodispatch/internal/core/domain/model/courier"
	"geodispatch/internal/core/domain/model/kernel"
)

// CandidateSelector is a domain service that ranks eligible couriers for a
// pickup point.
//
// Filtering: a candidate must be available (online, on an open shift, under
// its concurrent-assignment limit, with a reported location) and must not be
// in the exclusion set of couriers already offered this order.
//
// Ranking: ascending great-circle distance from the pickup point to the
// courier's last reported location. Ties break on the earlier last-active
// timestamp, then on the lowest courier id, so the ordering is
// deterministic and reproducible.
type CandidateSelector struct{}

// NewCandidateSelector creates a new CandidateSelector instance.
func NewCandidateSelector() CandidateSelector {
	return CandidateSelector{}
}

// ranked pairs a candidate with its precomputed distance to the pickup.
type ranked struct {
	courier  *courier.Courier
	distance float64
}

// Select returns the ordered candidate list for a pickup point, possibly
// empty.
//
// Parameters:
//   - pickup: The pickup coordinate orders are collected from
//   - couriers: Couriers to consider
//   - excluded: Courier ids (string form) to skip, typically couriers
//     already offered-and-not-accepted for the order
func (s CandidateSelector) Select(
	pickup kernel.GeoPoint,
	couriers []*courier.Courier,
	excluded map[string]struct{},
) ([]*courier.Courier, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]ranked, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if _, skip := excluded[c.ID().String()]; skip {
			continue
		}

		if !c.IsAvailable() {
			continue
		}

		distance, err := c.DistanceTo(pickup)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, ranked{courier: c, distance: distance})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}

		iActive, jActive := candidates[i].courier.LastActiveAt(), candidates[j].courier.LastActiveAt()
		if !iActive.Equal(jActive) {
			return iActive.Before(jActive)
		}

		return candidates[i].courier.ID().String() < candidates[j].courier.ID().String()
	})

	result := make([]*courier.Courier, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.courier)
	}

	return result, nil
}
