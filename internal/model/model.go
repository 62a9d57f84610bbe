// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model holds the domain entities of Czujnik: users, the implants
// attached to them and the step-count measurements those implants emit.
//
// Entities are created once and never modified. Constructors apply the
// server-side policies (defaults, creation timestamps, epoch conversion) so
// that the transport layer only has to hand over what the client sent.
package model

import "time"

// DefaultImplantType is stored when an implant is added without a type.
const DefaultImplantType = "pedometer"

// FromEpoch converts client-supplied epoch seconds to a UTC timestamp.
func FromEpoch(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// FormatTime renders t in loc as RFC 3339. A nil loc means UTC. The zero
// time renders as an empty string.
func FormatTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(time.RFC3339)
}
