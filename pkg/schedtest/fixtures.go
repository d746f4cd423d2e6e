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

// Package schedtest provides fixtures for building entity descriptors
// and reservations in tests and in cmd/loadgen, so callers don't
// hand-roll the same pointer-field boilerplate in every test file.
package schedtest

import (
	"github.com/Pallinder/go-randomdata"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
)

// DescriptorBuilder assembles an entity.Descriptor field by field,
// defaulting nothing itself — that is glue.Admit's job — so a test can
// exercise glue defaulting by simply omitting a With call.
type DescriptorBuilder struct {
	d entity.Descriptor
}

// NewDescriptor starts a builder for class.
func NewDescriptor(class entity.Class) *DescriptorBuilder {
	return &DescriptorBuilder{d: entity.Descriptor{Class: class}}
}

func (b *DescriptorBuilder) WithWCETNS(ns uint64) *DescriptorBuilder {
	b.d.WCETNS = &ns
	return b
}

func (b *DescriptorBuilder) WithWCETCycles(cycles uint64) *DescriptorBuilder {
	b.d.WCETCycles = &cycles
	return b
}

func (b *DescriptorBuilder) WithPeriodNS(ns uint64) *DescriptorBuilder {
	b.d.PeriodNS = &ns
	return b
}

func (b *DescriptorBuilder) WithRelativeDeadlineNS(ns uint64) *DescriptorBuilder {
	b.d.RelativeDeadlineNS = &ns
	return b
}

func (b *DescriptorBuilder) WithPriority(p int32) *DescriptorBuilder {
	b.d.Priority = &p
	return b
}

// Build returns the assembled descriptor.
func (b *DescriptorBuilder) Build() entity.Descriptor {
	return b.d
}

// RandomClass picks uniformly among the three entity classes, for
// load-generation and fuzz-ish tests that want varied traffic without
// hand-listing the classes at every call site.
func RandomClass() entity.Class {
	switch randomdata.Number(0, 3) {
	case 0:
		return entity.ClassProcess
	case 1:
		return entity.ClassAiInference
	default:
		return entity.ClassGraph
	}
}

// RandomDescriptor builds a fully-specified descriptor with a period in
// [minPeriodNS, maxPeriodNS) and a WCET that is a random fraction of
// the period, keeping the implied single-entity utilization well under
// 100% so a batch of these rarely needs hand-tuning to stay admissible.
func RandomDescriptor(minPeriodNS, maxPeriodNS uint64) entity.Descriptor {
	period := minPeriodNS + uint64(randomdata.Number(0, int(maxPeriodNS-minPeriodNS)))
	wcet := uint64(randomdata.Number(1, 30)) * period / 100
	if wcet == 0 {
		wcet = 1
	}
	return NewDescriptor(RandomClass()).
		WithWCETNS(wcet).
		WithPeriodNS(period).
		Build()
}
