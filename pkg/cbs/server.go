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

// Package cbs implements a single Constant Bandwidth Server: a
// reservation with a fixed budget per period, where an overrun suspends
// the server until its next replenishment instead of stealing time from
// anyone else. A Server is a passive record; pkg/scheduler owns the
// table of them and decides when to call its methods.
package cbs

import "github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"

// State is the position of a server in its lifecycle, reported by
// introspection only; the scheduler never stores it as a field, it's
// derived from the other fields on demand.
type State int

const (
	StateRunnable State = iota
	StateRunning
	StateSuspended
	StateRetired
)

// Server is one CBS reservation once admitted. All durations are
// absolute or relative nanosecond counts in the pkg/clock timebase.
type Server struct {
	EntityID entity.ID
	Class    entity.Class

	BudgetNS           uint64
	PeriodNS           uint64
	RelativeDeadlineNS uint64

	DeadlineNS      uint64 // absolute
	RemainingNS     uint64
	NextReplenishNS uint64 // absolute
	Active          bool
}

// New creates a server already positioned for its first period: the
// caller (pkg/scheduler.Admit) supplies nowNS, from which New derives
// the absolute deadline and the first replenishment instant.
func New(id entity.ID, class entity.Class, budgetNS, periodNS, relativeDeadlineNS, nowNS uint64) *Server {
	return &Server{
		EntityID:           id,
		Class:              class,
		BudgetNS:           budgetNS,
		PeriodNS:           periodNS,
		RelativeDeadlineNS: relativeDeadlineNS,
		RemainingNS:        budgetNS,
		DeadlineNS:         nowNS + relativeDeadlineNS,
		NextReplenishNS:    nowNS + periodNS,
		Active:             true,
	}
}

// Replenish refills the budget and re-arms the deadline for the current
// instant, then advances NextReplenishNS by whole periods until it is
// again in the future. This is a phase-preserving catch-up policy: if
// an IRQ storm caused one or more periods to be missed, NextReplenishNS
// is advanced by k*PeriodNS (the smallest k that puts it back in the
// future) rather than re-phased to nowNS+PeriodNS, so a server's period
// boundary stays aligned to its original phase.
//
// Precondition: nowNS >= s.NextReplenishNS. Idempotent in the sense that
// calling it again before the (now advanced) NextReplenishNS is a no-op
// from the caller's perspective — pkg/scheduler only calls it when due.
func (s *Server) Replenish(nowNS uint64) {
	if nowNS < s.NextReplenishNS {
		return
	}
	s.RemainingNS = s.BudgetNS
	s.DeadlineNS = nowNS + s.RelativeDeadlineNS
	missed := (nowNS - s.NextReplenishNS) / s.PeriodNS
	s.NextReplenishNS += (missed + 1) * s.PeriodNS
}

// Consume debits ns nanoseconds of execution from the remaining budget,
// saturating at zero. It never returns an error: the caller (the tick
// hook, via pkg/scheduler.Consume) has nothing to do with an overrun
// beyond observing that the server becomes ineligible.
func (s *Server) Consume(ns uint64) {
	if ns >= s.RemainingNS {
		s.RemainingNS = 0
		return
	}
	s.RemainingNS -= ns
}

// Yield gives up the remainder of the current budget window without
// touching the deadline or next replenishment instant. A yielded
// server is treated exactly like one that overran its budget, so it
// becomes eligible again at its next replenishment like any other
// exhausted server, rather than losing only scheduling priority.
func (s *Server) Yield() {
	s.RemainingNS = 0
}

// Eligible reports whether the server can be selected right now.
// Replenishment, if due, must already have been applied by the caller.
func (s *Server) Eligible() bool {
	return s.Active && s.RemainingNS > 0
}

// State derives the server's position in the per-server state machine,
// for introspection. running reports whether this server is the one
// currently selected, which only the caller (pkg/glue, which tracks
// the last Schedule result) can know.
func (s *Server) State(running bool) State {
	if !s.Active {
		return StateRetired
	}
	if s.RemainingNS == 0 {
		return StateSuspended
	}
	if running {
		return StateRunning
	}
	return StateRunnable
}
