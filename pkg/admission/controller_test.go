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

package admission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/admission"
)

func TestTryAdmitRejectsNinthReservationOverCap(t *testing.T) {
	c := admission.New(850_000)
	// Eight reservations of (10ms, 100ms) = 100,000 ppm each = 800,000 total.
	for i := 0; i < 8; i++ {
		ppm, ok := c.TryAdmit(10_000_000, 100_000_000)
		require.True(t, ok)
		assert.Equal(t, uint32(100_000), ppm)
	}
	assert.Equal(t, uint32(800_000), c.UtilizationPPM())

	// A ninth identical admission would push utilization to 900,000 ppm,
	// which is beyond the 850,000 cap: reject.
	_, ok := c.TryAdmit(10_000_000, 100_000_000)
	assert.False(t, ok)
	assert.Equal(t, uint32(800_000), c.UtilizationPPM(), "rejected admission must not mutate state")
}

func TestTryAdmitOnePPMBeyondCapFails(t *testing.T) {
	c := admission.New(850_000)
	_, ok := c.TryAdmit(850_000, 1_000_000) // exactly 850,000 ppm
	require.True(t, ok)

	_, ok = c.TryAdmit(1, 1_000_000) // +1 ppm
	assert.False(t, ok)
}

func TestReleaseRestoresUtilizationExactly(t *testing.T) {
	c := admission.New(850_000)
	ppm, ok := c.TryAdmit(10_000_000, 100_000_000)
	require.True(t, ok)
	require.NoError(t, c.Release(10_000_000, 100_000_000))
	assert.Equal(t, uint32(0), c.UtilizationPPM())
	assert.Equal(t, uint32(100_000), ppm)
}

func TestReleaseWithoutAdmitIsInvariantViolation(t *testing.T) {
	c := admission.New(850_000)
	err := c.Release(10_000_000, 100_000_000)
	assert.ErrorIs(t, err, admission.ErrInvariantViolation)
}

func TestSingleServerConsumingEntireCap(t *testing.T) {
	// A budget of exactly the cap's share of the period (850,000 ns of
	// 1,000,000 ns): a server that consumes the entire cap by itself.
	c := admission.New(850_000)
	ppm, ok := c.TryAdmit(850_000, 1_000_000)
	require.True(t, ok)
	assert.Equal(t, uint32(850_000), ppm)
	assert.Equal(t, c.CapPPM(), c.UtilizationPPM())
}
