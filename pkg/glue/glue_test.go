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

package glue_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	fakeclock "k8s.io/utils/clock/testing"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/clock"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/glue"
)

func newTestGlue(cfg glue.Config) (*glue.Glue, *fakeclock.FakeClock) {
	fc := fakeclock.NewFakeClock(time.Unix(0, 0))
	g, err := glue.New(cfg, glue.WithClock(clock.NewWithClock(fc)))
	Expect(err).NotTo(HaveOccurred())
	return g, fc
}

var _ = Describe("Glue", func() {
	var cfg glue.Config

	BeforeEach(func() {
		cfg = glue.DefaultConfig()
		cfg.MaxServers = 4
	})

	Describe("Admit defaulting", func() {
		It("fills in an omitted period and WCET from Config", func() {
			g, _ := newTestGlue(cfg)
			err := g.Admit(1, entity.Descriptor{Class: entity.ClassProcess})
			Expect(err).NotTo(HaveOccurred())

			stats, ok := g.Stats(1)
			Expect(ok).To(BeTrue())
			Expect(stats.BudgetNS).To(Equal(cfg.DefaultWCETNS))
		})

		It("converts WCETCycles to nanoseconds using TimerFreqHz when WCETNS is omitted", func() {
			g, _ := newTestGlue(cfg)
			cycles := cfg.TimerFreqHz / 200 // exactly 5ms of cycles
			err := g.Admit(2, entity.Descriptor{Class: entity.ClassAiInference, WCETCycles: &cycles})
			Expect(err).NotTo(HaveOccurred())

			stats, ok := g.Stats(2)
			Expect(ok).To(BeTrue())
			Expect(stats.BudgetNS).To(Equal(uint64((5 * time.Millisecond).Nanoseconds())))
		})

		It("defaults the relative deadline to the resolved period when omitted", func() {
			g, _ := newTestGlue(cfg)
			periodNS := uint64(50_000_000)
			err := g.Admit(3, entity.Descriptor{Class: entity.ClassGraph, PeriodNS: &periodNS})
			Expect(err).NotTo(HaveOccurred())

			stats, ok := g.Stats(3)
			Expect(ok).To(BeTrue())
			// DeadlineNS is absolute (now + relative); at t=0 it equals the
			// relative deadline, which must have defaulted to periodNS.
			Expect(stats.DeadlineNS).To(Equal(periodNS))
		})

		It("rejects a caller-supplied deadline that exceeds the period", func() {
			g, _ := newTestGlue(cfg)
			periodNS := uint64(10_000_000)
			deadlineNS := uint64(20_000_000)
			err := g.Admit(4, entity.Descriptor{Class: entity.ClassProcess, PeriodNS: &periodNS, RelativeDeadlineNS: &deadlineNS})
			Expect(err).To(MatchError(glue.ErrInvalidReservation))
		})
	})

	Describe("Schedule and context switches", func() {
		It("counts a context switch only when the selected id changes", func() {
			g, fc := newTestGlue(cfg)
			Expect(g.Admit(1, entity.Descriptor{Class: entity.ClassProcess})).To(Succeed())

			_, ok := g.Schedule()
			Expect(ok).To(BeTrue())
			Expect(g.Metrics().ContextSwitches).To(Equal(uint64(1)))

			_, ok = g.Schedule()
			Expect(ok).To(BeTrue())
			Expect(g.Metrics().ContextSwitches).To(Equal(uint64(1)), "re-selecting the same entity must not re-count")

			fc.Step(time.Millisecond) // no-op, keeps fc referenced
		})
	})

	Describe("Complete", func() {
		It("is idempotent and marks the id recently retired", func() {
			g, _ := newTestGlue(cfg)
			Expect(g.Admit(1, entity.Descriptor{Class: entity.ClassProcess})).To(Succeed())

			g.Complete(1)
			Expect(g.RecentlyRetired(1)).To(BeTrue())
			Expect(g.Metrics().Active).To(Equal(0))

			g.Complete(1) // second call must not panic or alter metrics
			Expect(g.Metrics().Active).To(Equal(0))
		})
	})

	Describe("Metrics", func() {
		It("reflects admitted and rejected counts and a stable ConfigHash", func() {
			g, _ := newTestGlue(cfg)
			for i := entity.ID(1); i <= entity.ID(cfg.MaxServers); i++ {
				Expect(g.Admit(i, entity.Descriptor{Class: entity.ClassProcess})).To(Succeed())
			}
			err := g.Admit(entity.ID(cfg.MaxServers+1), entity.Descriptor{Class: entity.ClassProcess})
			Expect(err).To(HaveOccurred())

			snap := g.Metrics()
			Expect(snap.Admitted).To(Equal(uint64(cfg.MaxServers)))
			Expect(snap.Rejected).To(Equal(uint64(1)))
			Expect(snap.Active).To(Equal(cfg.MaxServers))
			Expect(snap.ConfigHash).NotTo(BeZero())

			g2, _ := newTestGlue(cfg)
			Expect(g2.Metrics().ConfigHash).To(Equal(snap.ConfigHash), "identical configs must hash identically")
		})
	})

	Describe("Consume and Yield on a missing id", func() {
		It("is a silent no-op", func() {
			g, _ := newTestGlue(cfg)
			Expect(func() {
				g.Consume(999, 1_000_000)
				g.Yield(999)
			}).NotTo(Panic())
			_, ok := g.Stats(999)
			Expect(ok).To(BeFalse())
		})
	})
})
