package services_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/core/domain/model/fleet"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
)

func TestNewRandomRobotSelector(t *testing.T) {
	t.Run("requires_random_source", func(t *testing.T) {
		_, err := services.NewRandomRobotSelector(nil)
		assert.Error(t, err)
	})

	t.Run("creates_selector", func(t *testing.T) {
		s, err := services.NewRandomRobotSelector(rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		assert.NotNil(t, s)
	})
}

func TestRandomRobotSelector_Select(t *testing.T) {
	t.Run("returns_error_when_no_candidates", func(t *testing.T) {
		s, err := services.NewRandomRobotSelector(rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		_, err = s.Select(nil)
		assert.True(t, errors.Is(err, fleet.ErrNoEligibleRobots))
	})

	t.Run("returns_the_only_candidate", func(t *testing.T) {
		s, err := services.NewRandomRobotSelector(rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		id, err := s.Select([]kernel.RobotID{"AMR-001"})
		require.NoError(t, err)
		assert.Equal(t, kernel.RobotID("AMR-001"), id)
	})

	t.Run("always_picks_from_the_candidates", func(t *testing.T) {
		s, err := services.NewRandomRobotSelector(rand.New(rand.NewSource(42)))
		require.NoError(t, err)

		eligible := []kernel.RobotID{"AMR-001", "AMR-002", "AMR-003"}
		seen := make(map[kernel.RobotID]int)
		for range 300 {
			id, err := s.Select(eligible)
			require.NoError(t, err)
			seen[id]++
		}

		for _, want := range eligible {
			assert.Greater(t, seen[want], 0, "robot %s never selected", want)
		}
	})
}
