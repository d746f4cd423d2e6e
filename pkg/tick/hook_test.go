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

package tick_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fakeclock "k8s.io/utils/clock/testing"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/clock"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/glue"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/tick"
)

func newHook(t *testing.T) (*tick.Hook, *glue.Glue, *fakeclock.FakeClock) {
	t.Helper()
	fc := fakeclock.NewFakeClock(time.Unix(0, 0))
	cfg := glue.DefaultConfig()
	cfg.MaxServers = 4
	g, err := glue.New(cfg, glue.WithClock(clock.NewWithClock(fc)))
	require.NoError(t, err)
	return tick.New(g, cfg.TickNS), g, fc
}

func TestOnTickChargesThePreviouslySelectedEntity(t *testing.T) {
	h, g, _ := newHook(t)
	require.NoError(t, g.Admit(1, entity.Descriptor{Class: entity.ClassProcess}))

	_, id, ok := h.OnTick()
	require.True(t, ok)
	require.Equal(t, entity.ID(1), id)

	statsBefore, _ := g.Stats(1)

	_, _, ok = h.OnTick()
	require.True(t, ok)
	statsAfter, _ := g.Stats(1)
	assert.Less(t, statsAfter.RemainingNS, statsBefore.RemainingNS, "the second OnTick must have charged entity 1 for the first tick")
}

func TestOnTickReportsSwitchedOnlyWhenSelectionChanges(t *testing.T) {
	h, g, _ := newHook(t)
	require.NoError(t, g.Admit(1, entity.Descriptor{Class: entity.ClassProcess}))

	switched, _, ok := h.OnTick()
	require.True(t, ok)
	assert.True(t, switched, "the first selection is always a switch from idle")

	switched, _, ok = h.OnTick()
	require.True(t, ok)
	assert.False(t, switched, "re-selecting the same entity is not a switch")
}

func TestOnTickSwitchesToIdleWhenARunningEntityYields(t *testing.T) {
	h, g, _ := newHook(t)
	require.NoError(t, g.Admit(1, entity.Descriptor{Class: entity.ClassProcess}))

	_, id, ok := h.OnTick()
	require.True(t, ok)
	require.Equal(t, entity.ID(1), id)

	g.Yield(1)

	switched, _, ok := h.OnTick()
	assert.False(t, ok)
	assert.True(t, switched, "dropping from a live selection to idle is itself a switch")
}
