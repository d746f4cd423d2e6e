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

// Package entity holds the data model shared by every scheduled unit: a
// general-purpose process, an AI inference task, or a dataflow-graph
// operator. The scheduler core treats Class as an opaque tag; it never
// dispatches on it.
package entity

// ID is a nonzero, caller-assigned identifier, unique among live
// reservations. Zero is reserved and always invalid.
type ID uint32

// Class tags the kind of entity a reservation belongs to. The scheduler
// ignores it except for bookkeeping and introspection; no behavior in
// pkg/scheduler branches on Class.
type Class string

const (
	ClassProcess     Class = "process"
	ClassAiInference Class = "ai_inference"
	ClassGraph       Class = "graph"
)

// Descriptor is what an entity layer (process subsystem, AI runtime,
// graph runtime) hands to the glue. Any nil field is filled in from
// glue.Config's defaults before admission; WCETCycles and WCETNS are
// mutually exclusive ways to express the same quantity. Priority is
// accepted and stored but never consulted by EDF selection.
type Descriptor struct {
	Class Class

	// WCETCycles, if set, is converted to nanoseconds via the timer
	// frequency before admission. Ignored if WCETNS is also set.
	WCETCycles *uint64

	// WCETNS is the worst-case execution time per period, in
	// nanoseconds. Takes precedence over WCETCycles.
	WCETNS *uint64

	PeriodNS           *uint64
	RelativeDeadlineNS *uint64
	Priority           *int32
}

// Reservation is the fully-resolved admission request the scheduler
// core operates on: every optional field of a Descriptor has been
// defaulted, and WCET has been converted to nanoseconds.
type Reservation struct {
	EntityID           ID
	Class              Class
	WCETNS             uint64
	PeriodNS           uint64
	RelativeDeadlineNS uint64
	Priority           int32
}
