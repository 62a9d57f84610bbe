// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "time"

// User is the identity record owning zero or more implants.
type User struct {
	ID        int64
	FullName  *string
	CreatedAt time.Time
	Address   *string
	Telephone *string
	PESEL     *string

	// Implants is only populated by listings that ask for it.
	Implants []Implant
}

// NewUser builds a candidate user. CreatedAt is always taken from now,
// truncated to whole seconds.
func NewUser(fullName, address, telephone, pesel *string, now time.Time) User {
	return User{
		FullName:  fullName,
		CreatedAt: now.UTC().Truncate(time.Second),
		Address:   address,
		Telephone: telephone,
		PESEL:     pesel,
	}
}

// UserView is the externally visible projection of a User.
type UserView struct {
	ID        int64   `json:"id"`
	FullName  *string `json:"full_name"`
	CreatedAt string  `json:"created_at"`
	Address   *string `json:"address"`
	Telephone *string `json:"telephone"`
	PESEL     *string `json:"PESEL"`
}

// View projects u for API and listing output.
func (u User) View(loc *time.Location) UserView {
	return UserView{
		ID:        u.ID,
		FullName:  u.FullName,
		CreatedAt: FormatTime(u.CreatedAt, loc),
		Address:   u.Address,
		Telephone: u.Telephone,
		PESEL:     u.PESEL,
	}
}

// ImplantIDs returns the ids of the loaded implants in order.
func (u User) ImplantIDs() []int64 {
	ids := make([]int64, 0, len(u.Implants))
	for _, im := range u.Implants {
		ids = append(ids, im.ID)
	}
	return ids
}
