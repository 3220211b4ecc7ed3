package ecs_test

import (
	"testing"

	"github.com/plus3/framestep/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingletonAfterRelease(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	clock := ecs.NewSingleton[MatchClock](storage, MatchClock{Rounds: 3})
	require.True(t, clock.Exists())
	assert.Equal(t, 3, clock.Get().Rounds)

	storage.Release()
	assert.False(t, clock.Exists())
	assert.Nil(t, clock.Get())

	// rebinding picks up the value in the new storage
	fresh := ecs.NewStorage(ecs.NewComponentRegistry())
	fresh.AddSingleton(MatchClock{Rounds: 7})
	clock.Init(fresh)
	require.True(t, clock.Exists())
	assert.Equal(t, 7, clock.Get().Rounds)
}
