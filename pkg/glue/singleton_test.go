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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsExactlyOnce(t *testing.T) {
	t.Cleanup(resetSingletonForTest)
	resetSingletonForTest()

	cfg := DefaultConfig()
	cfg.MaxServers = 2
	first, err := Init(cfg)
	require.NoError(t, err)

	other := DefaultConfig()
	other.MaxServers = 99
	second, err := Init(other)
	require.NoError(t, err)

	assert.Same(t, first, second, "a second Init must return the first instance, not rebuild one")
	assert.Equal(t, 2, second.sched.MaxServers(), "the second call's config must be ignored")
}

func TestInstanceBeforeInitIsAbsent(t *testing.T) {
	t.Cleanup(resetSingletonForTest)
	resetSingletonForTest()

	_, ok := Instance()
	assert.False(t, ok)
}
