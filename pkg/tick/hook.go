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

// Package tick implements the timer-interrupt hook that drives
// pkg/glue from whatever periodic source a caller wires it to (a real
// hardware timer, or a ticker goroutine in the demo daemon). The hook
// itself never blocks and never allocates on its hot path.
package tick

import (
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/glue"
)

// Hook tracks which entity was running across calls to OnTick so it
// can charge the tick to the right server before re-selecting.
type Hook struct {
	g      *glue.Glue
	tickNS uint64

	runningID entity.ID
	running   bool
}

// New builds a hook that charges tickNS nanoseconds to the previously
// selected entity on every call to OnTick.
func New(g *glue.Glue, tickNS uint64) *Hook {
	return &Hook{g: g, tickNS: tickNS}
}

// OnTick charges the tick to whichever entity was running since the
// last call, asks the glue to reselect, and reports whether the
// selection changed. The charge is always the full tick length: there
// is no sub-tick accounting for an entity that finishes partway
// through, so the last tick before completion is routinely an
// over-charge against a server that has already yielded or been
// retired by the time OnTick next runs — Consume on a missing or
// already-exhausted id is a no-op, so this never corrupts accounting,
// it just doesn't refund the unused remainder.
func (h *Hook) OnTick() (switched bool, next entity.ID, ok bool) {
	if h.running {
		h.g.Consume(h.runningID, h.tickNS)
	}

	next, ok = h.g.Schedule()
	switched = ok != h.running || (ok && next != h.runningID)
	h.runningID, h.running = next, ok
	return switched, next, ok
}

// Reset clears the hook's notion of who was running, without touching
// the glue. Use this after a caller-driven Complete/Yield of the
// currently running entity outside the normal tick cadence, so the
// next OnTick does not charge a stale id.
func (h *Hook) Reset() {
	h.running = false
}
