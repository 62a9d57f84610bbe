// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "time"

// Implant is a device attached to exactly one user.
type Implant struct {
	ID            int64
	Type          string
	PlacementDate time.Time
	UserID        int64

	// Measurements is only populated by listings that ask for it.
	Measurements []Measurement
}

// NewImplant builds a candidate implant. A nil or empty typ falls back to
// DefaultImplantType; placement is given in epoch seconds.
func NewImplant(typ *string, placement int64, userID int64) Implant {
	t := DefaultImplantType
	if typ != nil && *typ != "" {
		t = *typ
	}
	return Implant{
		Type:          t,
		PlacementDate: FromEpoch(placement),
		UserID:        userID,
	}
}

// ImplantView is the externally visible projection of an Implant.
type ImplantView struct {
	ID            int64  `json:"id"`
	Type          string `json:"type"`
	PlacementDate string `json:"placement_date"`
	UserID        int64  `json:"user_id"`
}

// View projects i for API and listing output.
func (i Implant) View(loc *time.Location) ImplantView {
	return ImplantView{
		ID:            i.ID,
		Type:          i.Type,
		PlacementDate: FormatTime(i.PlacementDate, loc),
		UserID:        i.UserID,
	}
}
