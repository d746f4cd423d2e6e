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

// Package admission tracks aggregate CPU utilization in parts-per-million
// and accepts or rejects a reservation against a fixed bound. It holds
// no reference to the server table; pkg/scheduler is the only caller,
// and it is responsible for calling Release exactly once per
// successful TryAdmit.
package admission

import (
	"errors"
	"math"
	"math/bits"
)

// ErrInvariantViolation is returned by Release when the accumulator
// would underflow. This indicates the caller released a utilization
// contribution it never admitted — a bookkeeping bug above this
// package, not a recoverable runtime condition.
var ErrInvariantViolation = errors.New("admission: utilization underflow")

// Controller holds the running utilization accumulator against a fixed
// cap, both in parts-per-million (ppm, i.e. a fraction times 1e6).
type Controller struct {
	usedPPM uint32
	capPPM  uint32
}

// New builds a controller with the given cap. capPPM must satisfy
// 0 < capPPM < 1_000_000; callers (pkg/glue.Config.Validate) are
// expected to enforce that before construction.
func New(capPPM uint32) *Controller {
	return &Controller{capPPM: capPPM}
}

// UtilizationPPM returns the currently admitted utilization.
func (c *Controller) UtilizationPPM() uint32 {
	return c.usedPPM
}

// CapPPM returns the configured admission bound.
func (c *Controller) CapPPM() uint32 {
	return c.capPPM
}

// TryAdmit attempts to reserve budgetNS/periodNS worth of utilization.
// It returns the ppm contribution and whether admission succeeded; on
// failure no state is mutated.
func (c *Controller) TryAdmit(budgetNS, periodNS uint64) (ppm uint32, ok bool) {
	u := utilizationPPM(budgetNS, periodNS)
	if uint64(c.usedPPM)+uint64(u) > uint64(c.capPPM) {
		return u, false
	}
	c.usedPPM += u
	return u, true
}

// Release gives back a utilization contribution previously granted by
// TryAdmit for the same (budgetNS, periodNS) pair. It must be called
// exactly once per successful admission; calling it for a reservation
// that was never admitted is an invariant violation.
func (c *Controller) Release(budgetNS, periodNS uint64) error {
	u := utilizationPPM(budgetNS, periodNS)
	if u > c.usedPPM {
		return ErrInvariantViolation
	}
	c.usedPPM -= u
	return nil
}

// utilizationPPM computes floor(1e6 * budgetNS / periodNS) using a
// 128-bit intermediate product (math/bits.Mul64/Div64) so it neither
// overflows nor rounds the way a float64 division would for the
// nanosecond magnitudes this package deals with. A contribution too
// large for a uint32 saturates at math.MaxUint32, which is always over
// any valid cap.
func utilizationPPM(budgetNS, periodNS uint64) uint32 {
	if periodNS == 0 {
		return 0
	}
	hi, lo := bits.Mul64(budgetNS, 1_000_000)
	if hi >= periodNS {
		return math.MaxUint32
	}
	q, _ := bits.Div64(hi, lo, periodNS)
	if q > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(q)
}
