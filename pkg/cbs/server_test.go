/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cbs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/cbs"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
)

func TestNewPositionsFirstPeriod(t *testing.T) {
	s := cbs.New(42, entity.ClassProcess, 10_000_000, 100_000_000, 100_000_000, 0)
	require.Equal(t, uint64(10_000_000), s.RemainingNS)
	assert.Equal(t, uint64(100_000_000), s.DeadlineNS)
	assert.Equal(t, uint64(100_000_000), s.NextReplenishNS)
	assert.True(t, s.Active)
}

func TestConsumeSaturatesAtZero(t *testing.T) {
	s := cbs.New(1, entity.ClassProcess, 10_000_000, 100_000_000, 100_000_000, 0)
	s.Consume(15_000_000)
	assert.Equal(t, uint64(0), s.RemainingNS, "consumption beyond remaining budget must saturate, never wrap")
	assert.False(t, s.Eligible())
}

func TestConsumePartial(t *testing.T) {
	s := cbs.New(1, entity.ClassProcess, 10_000_000, 100_000_000, 100_000_000, 0)
	s.Consume(4_000_000)
	assert.Equal(t, uint64(6_000_000), s.RemainingNS)
	assert.True(t, s.Eligible())
}

func TestReplenishSinglePeriod(t *testing.T) {
	s := cbs.New(1, entity.ClassProcess, 10_000_000, 100_000_000, 100_000_000, 0)
	s.Consume(10_000_000)
	require.False(t, s.Eligible())

	s.Replenish(100_000_000)
	assert.Equal(t, uint64(10_000_000), s.RemainingNS)
	assert.Equal(t, uint64(200_000_000), s.DeadlineNS)
	assert.Equal(t, uint64(200_000_000), s.NextReplenishNS)
	assert.True(t, s.Eligible())
}

func TestReplenishBeforeDueIsNoOp(t *testing.T) {
	s := cbs.New(1, entity.ClassProcess, 10_000_000, 100_000_000, 100_000_000, 0)
	s.Consume(10_000_000)
	s.Replenish(50_000_000) // nowNS < NextReplenishNS
	assert.Equal(t, uint64(0), s.RemainingNS, "replenish must not fire before it is due")
}

func TestReplenishCatchUpPreservesPhase(t *testing.T) {
	// Period 100ms, next replenish due at t=100ms. An IRQ storm delays
	// the replenishment pass until t=350ms: three periods have elapsed
	// (100, 200, 300), so the phase-preserving policy should land the
	// next replenishment at t=400ms, not t=450ms (re-phase).
	s := cbs.New(1, entity.ClassProcess, 10_000_000, 100_000_000, 100_000_000, 0)
	s.Replenish(350_000_000)
	assert.Equal(t, uint64(400_000_000), s.NextReplenishNS)
	assert.Equal(t, uint64(450_000_000), s.DeadlineNS)
	assert.Equal(t, uint64(10_000_000), s.RemainingNS)
}

func TestYieldLosesRemainingBudgetOnly(t *testing.T) {
	s := cbs.New(1, entity.ClassProcess, 10_000_000, 100_000_000, 100_000_000, 0)
	deadline, nextReplenish := s.DeadlineNS, s.NextReplenishNS
	s.Yield()
	assert.Equal(t, uint64(0), s.RemainingNS)
	assert.Equal(t, deadline, s.DeadlineNS, "yield must not touch the deadline")
	assert.Equal(t, nextReplenish, s.NextReplenishNS, "yield must not touch the next replenish instant")
	assert.False(t, s.Eligible())
}

func TestStateMachine(t *testing.T) {
	s := cbs.New(1, entity.ClassProcess, 10_000_000, 100_000_000, 100_000_000, 0)
	assert.Equal(t, cbs.StateRunnable, s.State(false))
	assert.Equal(t, cbs.StateRunning, s.State(true))

	s.Consume(10_000_000)
	assert.Equal(t, cbs.StateSuspended, s.State(false))

	s.Active = false
	assert.Equal(t, cbs.StateRetired, s.State(false))
}
