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

// Command schedctl is a scripting and demo front-end for pkg/glue.
// Each invocation boots its own in-process scheduler — there is no
// persisted state and no wire format to a daemon, so repeated
// invocations never share admissions across processes; use
// cmd/schedulerd for a long-running scheduler a script can observe
// over time.
package main

import (
	"fmt"
	"os"

	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/glue"
)

var (
	flagMaxServers  int
	flagUtilMaxPPM  uint32
	flagTimerFreqHz uint64
)

func newLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	return l
}

func newGlueFromFlags() (*glue.Glue, error) {
	cfg := glue.DefaultConfig()
	if flagMaxServers > 0 {
		cfg.MaxServers = flagMaxServers
	}
	if flagUtilMaxPPM > 0 {
		cfg.UtilMaxPPM = flagUtilMaxPPM
	}
	if flagTimerFreqHz > 0 {
		cfg.TimerFreqHz = flagTimerFreqHz
	}
	zlog := newLogger()
	return glue.New(cfg, glue.WithLogger(zapr.NewLogger(zlog)))
}

func main() {
	root := &cobra.Command{
		Use:   "schedctl",
		Short: "Scripting front-end for the CBS/EDF scheduler glue",
	}
	root.PersistentFlags().IntVar(&flagMaxServers, "max-servers", 0, "override Config.MaxServers (0 = default)")
	root.PersistentFlags().Uint32Var(&flagUtilMaxPPM, "util-max-ppm", 0, "override Config.UtilMaxPPM (0 = default)")
	root.PersistentFlags().Uint64Var(&flagTimerFreqHz, "timer-freq-hz", 0, "override Config.TimerFreqHz (0 = default)")

	root.AddCommand(newAdmitCmd())
	root.AddCommand(newMetricsCmd())
	root.AddCommand(newWatchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
