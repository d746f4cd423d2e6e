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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/glue"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/prettyprint"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/tick"
)

func newWatchCmd() *cobra.Command {
	var (
		count      int
		iterations int
		interval   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Seed a demo fleet, drive it with simulated ticks, and print rate-limited metrics snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newGlueFromFlags()
			if err != nil {
				return err
			}
			admitted := seedDemoFleet(g, count)
			fmt.Printf("seeded %d reservations\n", admitted)

			h := tick.New(g, glue.DefaultConfig().TickNS)

			// rate.Limiter spaces polls at least --interval apart. An
			// --interval of 0 or less makes rate.Every return rate.Inf, and
			// the polls are then not throttled at all.
			limiter := rate.NewLimiter(rate.Every(interval), 1)
			ctx := context.Background()
			for i := 0; i < iterations; i++ {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
				_, _, _ = h.OnTick()
				snap := g.Metrics()
				fmt.Printf("[%02d] active=%d utilization=%s context_switches=%d invariant_violations=%d\n",
					i, snap.Active, prettyprint.PPM(snap.UtilizationPPM), snap.ContextSwitches, snap.InvariantViolations)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of randomized reservations to seed")
	cmd.Flags().IntVar(&iterations, "iterations", 20, "number of simulated ticks to drive")
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "minimum wall-clock interval between polls")
	return cmd
}
