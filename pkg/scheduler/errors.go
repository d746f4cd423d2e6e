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

package scheduler

import "errors"

var (
	// ErrTableFull is returned by Admit when MAX_SERVERS reservations
	// are already live. Recoverable: retry after a completion.
	ErrTableFull = errors.New("scheduler: server table full")

	// ErrDuplicateID is returned by Admit when the entity id is already
	// live. Indicates a programming error in the caller's id allocator.
	ErrDuplicateID = errors.New("scheduler: duplicate entity id")

	// ErrOverUtilization is returned by Admit when the reservation would
	// breach the admission bound. Recoverable: reduce the request or
	// wait for a release.
	ErrOverUtilization = errors.New("scheduler: admission would exceed utilization bound")

	// ErrInvariantViolation signals an internal bookkeeping
	// inconsistency (e.g. utilization underflow on release). Fatal from
	// the scheduler's own view: once latched, Admit and Remove return it
	// and Consume, Yield and SelectNext do nothing until Reset is called.
	ErrInvariantViolation = errors.New("scheduler: invariant violation")
)
