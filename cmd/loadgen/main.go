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

// Command loadgen seeds a freshly booted scheduler with a randomized
// mix of reservations and reports how many were admitted before the
// utilization cap or the table filled up, for manual soak testing of
// admission and EDF ordering under load.
package main

import (
	"flag"
	"fmt"

	"github.com/Pallinder/go-randomdata"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/glue"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/prettyprint"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/schedtest"
)

func main() {
	count := flag.Int("count", 300, "number of randomized reservations to attempt to admit")
	minPeriodNS := flag.Uint64("min-period-ns", 5_000_000, "lower bound of the randomized period range")
	maxPeriodNS := flag.Uint64("max-period-ns", 500_000_000, "upper bound of the randomized period range")
	flag.Parse()

	cfg := glue.DefaultConfig()
	g, err := glue.New(cfg)
	if err != nil {
		fmt.Println("failed to build scheduler:", err)
		return
	}

	admitted, rejected := 0, 0
	for i := 0; i < *count; i++ {
		id := entity.ID(i + 1)
		desc := schedtest.RandomDescriptor(*minPeriodNS, *maxPeriodNS)
		label := randomdata.SillyName() // human-readable tag for the console log only, not stored
		if err := g.Admit(id, desc); err != nil {
			rejected++
			fmt.Printf("rejected entity %d (%s): %v\n", id, label, err)
			continue
		}
		admitted++
	}

	snap := g.Metrics()
	fmt.Printf("\nrequested=%d admitted=%d rejected=%d active=%d utilization=%s\n",
		*count, admitted, rejected, snap.Active, prettyprint.PPM(snap.UtilizationPPM))
}
