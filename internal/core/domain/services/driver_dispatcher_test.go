package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/core/domain/services"
)

func alwaysClaim(int64) (bool, error) { return true, nil }

func TestDriverDispatcher_Dispatch(t *testing.T) {
	t.Run("should pick the only candidate", func(t *testing.T) {
		dispatcher := services.NewDriverDispatcher()

		driverID, err := dispatcher.Dispatch([]int64{5}, alwaysClaim)

		require.NoError(t, err)
		assert.Equal(t, int64(5), driverID)
	})

	t.Run("should fail on empty candidates without claiming", func(t *testing.T) {
		dispatcher := services.NewDriverDispatcher()
		called := false

		_, err := dispatcher.Dispatch(nil, func(int64) (bool, error) {
			called = true
			return true, nil
		})

		require.ErrorIs(t, err, services.ErrDriverNotFound)
		assert.False(t, called)
	})

	t.Run("should use the index produced by the generator", func(t *testing.T) {
		dispatcher := services.NewDriverDispatcherWithRand(func(n int) int { return n - 1 })

		driverID, err := dispatcher.Dispatch([]int64{5, 6, 7}, alwaysClaim)

		require.NoError(t, err)
		assert.Equal(t, int64(7), driverID)
	})

	t.Run("should re-pick among the rest after a lost claim", func(t *testing.T) {
		dispatcher := services.NewDriverDispatcherWithRand(func(int) int { return 0 })
		var attempts []int64

		driverID, err := dispatcher.Dispatch([]int64{5, 6, 7}, func(id int64) (bool, error) {
			attempts = append(attempts, id)
			return id != 5, nil
		})

		require.NoError(t, err)
		assert.Equal(t, []int64{5, 7}, attempts)
		assert.Equal(t, int64(7), driverID)
	})

	t.Run("should report not found when every claim is lost", func(t *testing.T) {
		dispatcher := services.NewDriverDispatcher()
		attempts := map[int64]int{}

		_, err := dispatcher.Dispatch([]int64{5, 6, 6, 7}, func(id int64) (bool, error) {
			attempts[id]++
			return false, nil
		})

		require.ErrorIs(t, err, services.ErrDriverNotFound)
		assert.Equal(t, map[int64]int{5: 1, 6: 1, 7: 1}, attempts)
	})

	t.Run("should stop on claim error", func(t *testing.T) {
		dispatcher := services.NewDriverDispatcher()
		boom := errors.New("directory down")

		_, err := dispatcher.Dispatch([]int64{5, 6}, func(int64) (bool, error) { return false, boom })

		require.ErrorIs(t, err, boom)
	})

	t.Run("should not modify candidates", func(t *testing.T) {
		dispatcher := services.NewDriverDispatcherWithRand(func(int) int { return 0 })
		candidates := []int64{5, 6, 7}

		_, _ = dispatcher.Dispatch(candidates, func(id int64) (bool, error) { return false, nil })

		assert.Equal(t, []int64{5, 6, 7}, candidates)
	})
}

func TestDriverDispatcher_IsRoughlyUniform(t *testing.T) {
	dispatcher := services.NewDriverDispatcher()
	counts := map[int64]int{}
	const rounds = 3000

	for range rounds {
		id, err := dispatcher.Dispatch([]int64{1, 2, 3}, alwaysClaim)
		require.NoError(t, err)
		counts[id]++
	}

	for id, c := range counts {
		assert.InDelta(t, rounds/3, c, rounds/10, "driver %d picked %d times", id, c)
	}
	assert.Len(t, counts, 3)
}
