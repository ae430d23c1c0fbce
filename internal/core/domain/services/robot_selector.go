package services

import (
	"math/rand"

	"warehouse/internal/core/domain/model/fleet"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// RandomRobotSelector selects a robot uniformly at random from the eligible
// candidates. Randomness spreads wear across the fleet instead of always
// loading the robot with the lowest identifier.
//
// The selector owns its random source so that simulations can be made
// reproducible by seeding it.
type RandomRobotSelector struct {
	rng *rand.Rand
}

// NewRandomRobotSelector creates a selector backed by the given random source.
//
// Parameters:
//   - rng: The random source to draw from (must not be nil)
//
// Returns:
//   - *RandomRobotSelector: A selector ready for use by the matching loop
//   - error: Validation error if rng is nil
func NewRandomRobotSelector(rng *rand.Rand) (*RandomRobotSelector, error) {
	if rng == nil {
		return nil, errs.NewValueIsRequiredError("rng")
	}
	return &RandomRobotSelector{rng: rng}, nil
}

// Select returns one robot chosen uniformly from eligible.
//
// Returns fleet.ErrNoEligibleRobots when the slice is empty.
func (s *RandomRobotSelector) Select(eligible []kernel.RobotID) (kernel.RobotID, error) {
	if len(eligible) == 0 {
		return "", fleet.ErrNoEligibleRobots
	}
	return eligible[s.rng.Intn(len(eligible))], nil
}
