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

package glue

import (
	"errors"
	"strconv"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/scheduler"
)

// reasonLabel maps an admission error to the low-cardinality "reason"
// label used by the rejected_total counter.
func reasonLabel(err error) string {
	switch {
	case errors.Is(err, scheduler.ErrTableFull):
		return "table_full"
	case errors.Is(err, scheduler.ErrDuplicateID):
		return "duplicate_id"
	case errors.Is(err, scheduler.ErrOverUtilization):
		return "over_utilization"
	case errors.Is(err, scheduler.ErrInvariantViolation):
		return "invariant_violation"
	case errors.Is(err, ErrInvalidReservation):
		return "invalid_reservation"
	default:
		return "unknown"
	}
}

// entityIDKey renders id as a go-cache key.
func entityIDKey(id entity.ID) string {
	return strconv.FormatUint(uint64(id), 10)
}
