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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/prettyprint"
)

func newMetricsCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Seed a demo fleet and print the resulting metrics snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newGlueFromFlags()
			if err != nil {
				return err
			}
			admitted := seedDemoFleet(g, count)
			snap := g.Metrics()
			fmt.Printf("admitted=%d (requested %d) rejected=%d active=%d utilization=%s context_switches=%d invariant_violations=%d config_hash=%x\n",
				admitted, count, snap.Rejected, snap.Active, prettyprint.PPM(snap.UtilizationPPM), snap.ContextSwitches, snap.InvariantViolations, snap.ConfigHash)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of randomized reservations to attempt to admit")
	return cmd
}
