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

// Package prettyprint renders diagnostic values for PrintStatus and
// cmd/schedctl in a form that stays readable on a wide table: long
// slices and maps truncate with a count, and nanosecond/ppm values get
// a human scale instead of a bare integer.
package prettyprint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Concise JSON-marshals o onto a single line, falling back to the
// error text if marshaling fails rather than panicking a status dump.
func Concise(o interface{}) string {
	raw, err := json.Marshal(o)
	if err != nil {
		return err.Error()
	}
	return string(raw)
}

// Slice renders s, truncating after maxItems with a "... and N more".
func Slice[T any](s []T, maxItems int) string {
	if len(s) <= maxItems {
		return Concise(s)
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < maxItems; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(Concise(s[i]))
	}
	fmt.Fprintf(&buf, ", ... and %d more]", len(s)-maxItems)
	return buf.String()
}

// Map renders values, truncating after maxItems. Go's map iteration
// order is randomized, so which entries survive truncation varies
// across calls; callers that need deterministic output should sort
// first and pass a slice through Slice instead.
func Map[K comparable, V any](values map[K]V, maxItems int) string {
	if len(values) <= maxItems {
		return Concise(values)
	}
	var parts []string
	for k, v := range values {
		if len(parts) >= maxItems {
			break
		}
		parts = append(parts, fmt.Sprintf("%v: %s", k, Concise(v)))
	}
	return fmt.Sprintf("{%s, ... and %d more}", strings.Join(parts, ", "), len(values)-maxItems)
}

// Duration renders a nanosecond count the way an operator reads a log
// line, picking the coarsest unit that doesn't lose precision below a
// millisecond, rather than emitting "12345678ns" for every budget.
func Duration(ns uint64) string {
	return time.Duration(ns).String()
}

// PPM renders a parts-per-million utilization value as a percentage
// with three decimal digits, e.g. 850000 -> "85.000%".
func PPM(ppm uint32) string {
	return fmt.Sprintf("%.3f%%", float64(ppm)/10_000)
}
