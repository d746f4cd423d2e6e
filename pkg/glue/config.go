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

package glue

import (
	"fmt"

	"go.uber.org/multierr"
)

// Config holds the scheduler's boot-time constants. Zero values are
// never valid: use DefaultConfig and override individual fields.
type Config struct {
	// MaxServers bounds simultaneously admitted reservations.
	MaxServers int
	// UtilMaxPPM is the admission utilization cap, in parts-per-million.
	UtilMaxPPM uint32
	// TimerFreqHz is the assumed cycle-counter frequency used to
	// convert WCET cycles to nanoseconds.
	TimerFreqHz uint64
	// TickNS is the tick period the hook attributes to the running
	// entity on every invocation.
	TickNS uint64
	// DefaultWCETNS is used when an admitter omits WCET entirely.
	DefaultWCETNS uint64
	// DefaultPeriodNS is used when an admitter omits the period.
	DefaultPeriodNS uint64
}

// DefaultConfig returns reasonable defaults for a general-purpose boot.
func DefaultConfig() Config {
	return Config{
		MaxServers:      256,
		UtilMaxPPM:      850_000,
		TimerFreqHz:     62_500_000,
		TickNS:          1_000_000,
		DefaultWCETNS:   10_000_000,
		DefaultPeriodNS: 100_000_000,
	}
}

// Validate folds every invalid field into a single joined error via
// go.uber.org/multierr, rather than stopping at the first failure, so a
// misconfigured boot can be diagnosed in one pass.
func (c Config) Validate() error {
	var err error
	if c.MaxServers <= 0 {
		err = multierr.Append(err, fmt.Errorf("MaxServers must be positive, got %d", c.MaxServers))
	}
	if c.UtilMaxPPM == 0 || c.UtilMaxPPM >= 1_000_000 {
		err = multierr.Append(err, fmt.Errorf("UtilMaxPPM must satisfy 0 < cap < 1,000,000, got %d", c.UtilMaxPPM))
	}
	if c.TimerFreqHz == 0 {
		err = multierr.Append(err, fmt.Errorf("TimerFreqHz must be positive"))
	}
	if c.TickNS == 0 {
		err = multierr.Append(err, fmt.Errorf("TickNS must be positive"))
	}
	if c.DefaultWCETNS == 0 {
		err = multierr.Append(err, fmt.Errorf("DefaultWCETNS must be positive"))
	}
	if c.DefaultPeriodNS == 0 {
		err = multierr.Append(err, fmt.Errorf("DefaultPeriodNS must be positive"))
	}
	if c.DefaultWCETNS > 0 && c.DefaultPeriodNS > 0 && c.DefaultWCETNS > c.DefaultPeriodNS {
		err = multierr.Append(err, fmt.Errorf("DefaultWCETNS (%d) must not exceed DefaultPeriodNS (%d)", c.DefaultWCETNS, c.DefaultPeriodNS))
	}
	return err
}
