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

// Package clock provides the scheduler's monotonic nanosecond time
// source. It never reads wall-clock time: every reading comes from a
// k8s.io/utils/clock.Clock, which in production is a free-running
// monotonic source and in tests is a manually stepped fake, so scenario
// tests can assert on exact deadlines and replenishment instants.
package clock

import (
	"math"
	"math/bits"
	"time"

	utilclock "k8s.io/utils/clock"
)

// DefaultTimerFreqHz is the assumed cycle-counter frequency used to
// convert WCET cycles to nanoseconds when a caller does not supply one.
const DefaultTimerFreqHz uint64 = 62_500_000

// Source produces strictly non-decreasing nanosecond timestamps. It is
// safe to call NowNS from any goroutine, including one standing in for
// interrupt context, since the underlying clock.Clock never blocks.
type Source struct {
	clock utilclock.PassiveClock
	start time.Time
}

// New wraps a real monotonic clock. Use NewWithClock in tests to inject
// a k8s.io/utils/clock/testing.FakeClock instead.
func New() *Source {
	return NewWithClock(utilclock.RealClock{})
}

// NewWithClock wraps an arbitrary clock.PassiveClock, e.g. a FakeClock.
func NewWithClock(c utilclock.PassiveClock) *Source {
	return &Source{clock: c, start: c.Now()}
}

// NowNS returns the current instant in nanoseconds since the Source was
// created, measured with clock.Since so a real clock's monotonic
// reading is used. Within a single Source, successive calls never
// decrease.
func (s *Source) NowNS() uint64 {
	return uint64(s.clock.Since(s.start))
}

// CyclesToNS converts a cycle count to nanoseconds at the given
// frequency using a 128-bit intermediate product (via math/bits) so the
// conversion neither overflows nor loses precision the way a naive
// 64-bit "cycles * 1e9 / freqHz" would once cycles exceeds about
// 1.8e10 (under five minutes of cycles at DefaultTimerFreqHz). A result
// that does not fit in 64 bits saturates at math.MaxUint64.
func CyclesToNS(cycles, freqHz uint64) uint64 {
	if freqHz == 0 {
		return 0
	}
	hi, lo := bits.Mul64(cycles, uint64(time.Second))
	if hi >= freqHz {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, freqHz)
	return q
}
