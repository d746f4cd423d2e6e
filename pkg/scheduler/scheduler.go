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

// Package scheduler implements the deterministic core: a
// fixed-capacity table of CBS servers, EDF selection over that table,
// and the admission/removal operations that keep it compact. A
// Scheduler is not safe for concurrent use on its own — pkg/glue's
// single mutex is the only synchronization the design calls for; every
// exported method here assumes its caller already holds that lock.
package scheduler

import (
	"math"

	"github.com/samber/lo"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/admission"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/cbs"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/clock"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
)

// Stats is the read-only per-entity snapshot returned by Stats.
type Stats struct {
	BudgetNS    uint64
	RemainingNS uint64
	DeadlineNS  uint64
	Class       entity.Class
}

// Scheduler owns the server table and the admission accumulator. The
// table is kept compact: used slots always occupy indices
// [0, len(servers)); Admit appends, Remove shifts trailing entries down.
type Scheduler struct {
	clock      *clock.Source
	admission  *admission.Controller
	maxServers int
	servers    []*cbs.Server

	invariantViolated bool
}

// New builds an empty scheduler bounded at maxServers live reservations
// and capPPM parts-per-million of aggregate utilization.
func New(clk *clock.Source, maxServers int, capPPM uint32) *Scheduler {
	return &Scheduler{
		clock:      clk,
		admission:  admission.New(capPPM),
		maxServers: maxServers,
		servers:    make([]*cbs.Server, 0, maxServers),
	}
}

// MaxServers returns the table's fixed capacity.
func (s *Scheduler) MaxServers() int { return s.maxServers }

// ServerCount returns the number of currently live reservations.
func (s *Scheduler) ServerCount() int { return len(s.servers) }

// UtilizationPPM returns the currently admitted aggregate utilization.
func (s *Scheduler) UtilizationPPM() uint32 { return s.admission.UtilizationPPM() }

// InvariantViolated reports whether a bookkeeping inconsistency has
// latched the scheduler into its fatal state.
func (s *Scheduler) InvariantViolated() bool { return s.invariantViolated }

// Reset clears a latched invariant violation. It does not restore any
// state that was lost when the violation occurred; it only allows
// further operations to proceed again. The kernel decides when (or
// whether) calling this is ever safe.
func (s *Scheduler) Reset() {
	s.invariantViolated = false
}

// Admit installs a new CBS server for res, subject to table capacity,
// duplicate-id rejection, and the admission bound. No partial state is
// left behind on any rejection.
func (s *Scheduler) Admit(res entity.Reservation) error {
	if s.invariantViolated {
		return ErrInvariantViolation
	}
	if len(s.servers) >= s.maxServers {
		return ErrTableFull
	}
	if _, _, found := s.find(res.EntityID); found {
		return ErrDuplicateID
	}
	if _, ok := s.admission.TryAdmit(res.WCETNS, res.PeriodNS); !ok {
		return ErrOverUtilization
	}
	now := s.clock.NowNS()
	s.servers = append(s.servers, cbs.New(res.EntityID, res.Class, res.WCETNS, res.PeriodNS, res.RelativeDeadlineNS, now))
	return nil
}

// SelectNext performs the replenishment pass followed by the EDF pass
// and returns the entity id with the earliest absolute deadline among
// eligible servers, breaking ties by lowest entity id. It returns
// (0, false) if no server is eligible.
func (s *Scheduler) SelectNext() (entity.ID, bool) {
	if s.invariantViolated {
		return 0, false
	}
	now := s.clock.NowNS()
	for _, server := range s.servers {
		if now >= server.NextReplenishNS {
			server.Replenish(now)
		}
	}

	var best *cbs.Server
	bestDeadline := uint64(math.MaxUint64)
	for _, server := range s.servers {
		if !server.Eligible() {
			continue
		}
		if server.DeadlineNS < bestDeadline ||
			(server.DeadlineNS == bestDeadline && server.EntityID < best.EntityID) {
			best = server
			bestDeadline = server.DeadlineNS
		}
	}
	if best == nil {
		return 0, false
	}
	return best.EntityID, true
}

// Consume debits ns nanoseconds from id's remaining budget. A missing
// id is a silent no-op: the caller may have raced with Remove.
func (s *Scheduler) Consume(id entity.ID, ns uint64) {
	if s.invariantViolated {
		return
	}
	if server, _, found := s.find(id); found {
		server.Consume(ns)
	}
}

// Yield marks id as having voluntarily relinquished the rest of its
// current budget window. A missing id is a silent no-op.
func (s *Scheduler) Yield(id entity.ID) {
	if s.invariantViolated {
		return
	}
	if server, _, found := s.find(id); found {
		server.Yield()
	}
}

// Remove retires id's server, releasing its utilization and compacting
// the table. It is idempotent: removing an id that is not live is a
// silent no-op, which is also what makes a second Remove(id) a no-op.
// It returns ErrInvariantViolation if the scheduler is already latched,
// and latches it only if the admission controller's bookkeeping itself
// is inconsistent — which should never happen for a server this
// scheduler itself admitted.
func (s *Scheduler) Remove(id entity.ID) error {
	if s.invariantViolated {
		return ErrInvariantViolation
	}
	server, idx, found := s.find(id)
	if !found {
		return nil
	}
	if err := s.admission.Release(server.BudgetNS, server.PeriodNS); err != nil {
		s.invariantViolated = true
		return ErrInvariantViolation
	}
	s.servers = append(s.servers[:idx], s.servers[idx+1:]...)
	return nil
}

// Stats returns a read-only snapshot of id's server, or false if id is
// not live.
func (s *Scheduler) Stats(id entity.ID) (Stats, bool) {
	server, _, found := s.find(id)
	if !found {
		return Stats{}, false
	}
	return Stats{
		BudgetNS:    server.BudgetNS,
		RemainingNS: server.RemainingNS,
		DeadlineNS:  server.DeadlineNS,
		Class:       server.Class,
	}, true
}

// ForEach visits every live server in table order (not deadline order)
// and stops early if visit returns false. Callers must not retain the
// *cbs.Server pointer beyond the callback: the table may reshuffle on
// the next Remove.
func (s *Scheduler) ForEach(visit func(*cbs.Server) bool) {
	for _, server := range s.servers {
		if !visit(server) {
			return
		}
	}
}

func (s *Scheduler) find(id entity.ID) (*cbs.Server, int, bool) {
	server, idx, found := lo.FindIndexOf(s.servers, func(srv *cbs.Server) bool {
		return srv.EntityID == id
	})
	if !found {
		return nil, -1, false
	}
	return server, idx, true
}
