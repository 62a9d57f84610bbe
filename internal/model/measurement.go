// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "time"

// Measurement is a single telemetry sample reported by an implant.
// Its primary key is called Number.
type Measurement struct {
	Number    int64
	Time      time.Time
	Steps     *int64
	ImplantID int64
}

// NewMeasurement builds a candidate measurement from epoch seconds.
func NewMeasurement(at int64, steps *int64, implantID int64) Measurement {
	return Measurement{
		Time:      FromEpoch(at),
		Steps:     steps,
		ImplantID: implantID,
	}
}

// MeasurementView is the externally visible projection of a Measurement.
type MeasurementView struct {
	Number    int64  `json:"number"`
	Time      string `json:"time"`
	Steps     *int64 `json:"steps"`
	ImplantID int64  `json:"implant_id"`
}

// View projects m for API and listing output.
func (m Measurement) View(loc *time.Location) MeasurementView {
	return MeasurementView{
		Number:    m.Number,
		Time:      FormatTime(m.Time, loc),
		Steps:     m.Steps,
		ImplantID: m.ImplantID,
	}
}
