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
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/spf13/cobra"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/prettyprint"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/scheduler"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/schedtest"
)

func newAdmitCmd() *cobra.Command {
	var (
		id         uint32
		class      string
		wcetNS     uint64
		periodNS   uint64
		deadlineNS uint64
		fillCount  int
		attempts   uint
	)

	cmd := &cobra.Command{
		Use:   "admit",
		Short: "Admit one reservation against a freshly booted scheduler, retrying on OverUtilization",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newGlueFromFlags()
			if err != nil {
				return err
			}
			if fillCount > 0 {
				seeded := seedDemoFleet(g, fillCount)
				fmt.Printf("seeded %d background reservations before the requested admission\n", seeded)
			}

			builder := schedtest.NewDescriptor(entity.Class(class))
			if wcetNS > 0 {
				builder = builder.WithWCETNS(wcetNS)
			}
			if periodNS > 0 {
				builder = builder.WithPeriodNS(periodNS)
			}
			if deadlineNS > 0 {
				builder = builder.WithRelativeDeadlineNS(deadlineNS)
			}
			desc := builder.Build()

			err = retry.Do(
				func() error {
					admitErr := g.Admit(entity.ID(id), desc)
					if errors.Is(admitErr, scheduler.ErrOverUtilization) {
						return admitErr // retryable
					}
					if admitErr != nil {
						return retry.Unrecoverable(admitErr)
					}
					return nil
				},
				retry.Attempts(attempts),
				retry.Delay(10*time.Millisecond),
				retry.DelayType(retry.BackOffDelay),
			)
			if err != nil {
				return fmt.Errorf("admit entity %d: %w", id, err)
			}

			stats, _ := g.Stats(entity.ID(id))
			fmt.Printf("admitted entity %d: budget=%s remaining=%s deadline=%d class=%s\n",
				id, prettyprint.Duration(stats.BudgetNS), prettyprint.Duration(stats.RemainingNS), stats.DeadlineNS, stats.Class)
			return nil
		},
	}

	cmd.Flags().Uint32Var(&id, "id", 1, "entity id to admit")
	cmd.Flags().StringVar(&class, "class", string(entity.ClassProcess), "entity class: process|ai_inference|graph")
	cmd.Flags().Uint64Var(&wcetNS, "wcet-ns", 0, "worst-case execution time per period, in nanoseconds (0 = Config default)")
	cmd.Flags().Uint64Var(&periodNS, "period-ns", 0, "replenishment period, in nanoseconds (0 = Config default)")
	cmd.Flags().Uint64Var(&deadlineNS, "deadline-ns", 0, "relative deadline, in nanoseconds (0 = defaults to the resolved period)")
	cmd.Flags().IntVar(&fillCount, "fill", 0, "admit N randomized background reservations first, to demonstrate OverUtilization retries")
	cmd.Flags().UintVar(&attempts, "attempts", 5, "retry attempts on a recoverable OverUtilization rejection")

	return cmd
}
