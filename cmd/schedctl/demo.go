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

package main

import (
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/glue"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/schedtest"
)

// seedDemoFleet admits up to n randomized reservations, stopping early
// (without error) the moment admission is rejected for any reason —
// callers that want a guaranteed-full fleet should shrink n or loosen
// --util-max-ppm instead of retrying here.
func seedDemoFleet(g *glue.Glue, n int) (admitted int) {
	for i := 0; i < n; i++ {
		id := entity.ID(i + 1)
		desc := schedtest.RandomDescriptor(20_000_000, 200_000_000)
		if err := g.Admit(id, desc); err != nil {
			break
		}
		admitted++
	}
	return admitted
}
