// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/czujnik/czujnik/internal/model"
	"github.com/uptrace/bun"
)

// UserModel maps the `users` table for Bun queries.
type UserModel struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64     `bun:"id,pk,autoincrement"`
	FullName      *string   `bun:"full_name"`
	CreatedAt     time.Time `bun:"created_at,nullzero"`
	Address       *string   `bun:"address"`
	Telephone     *string   `bun:"telephone"`
	Pesel         *string   `bun:"pesel"`

	Implants []*ImplantModel `bun:"rel:has-many,join:id=user_id"`
}

// ImplantModel maps the `implants` table.
type ImplantModel struct {
	bun.BaseModel `bun:"table:implants,alias:i"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Type          string    `bun:"type,notnull,default:'pedometer'"`
	PlacementDate time.Time `bun:"placement_date,nullzero"`
	UserID        int64     `bun:"user_id,notnull"`

	User         *UserModel          `bun:"rel:belongs-to,join:user_id=id"`
	Measurements []*MeasurementModel `bun:"rel:has-many,join:id=implant_id"`
}

// MeasurementModel maps the `measurements` table. Its key column is `number`.
type MeasurementModel struct {
	bun.BaseModel `bun:"table:measurements,alias:m"`
	Number        int64     `bun:"number,pk,autoincrement"`
	Time          time.Time `bun:"time,nullzero"`
	Steps         *int64    `bun:"steps"`
	ImplantID     int64     `bun:"implant_id,notnull"`

	Implant *ImplantModel `bun:"rel:belongs-to,join:implant_id=id"`
}

// --- Mapping helpers (centralized conversions) ---

func userModelToModel(um UserModel) model.User {
	u := model.User{
		ID:        um.ID,
		FullName:  um.FullName,
		CreatedAt: um.CreatedAt.UTC(),
		Address:   um.Address,
		Telephone: um.Telephone,
		PESEL:     um.Pesel,
	}
	if um.Implants != nil {
		u.Implants = make([]model.Implant, 0, len(um.Implants))
		for _, im := range um.Implants {
			u.Implants = append(u.Implants, implantModelToModel(*im))
		}
	}
	return u
}

func userToModel(u model.User) UserModel {
	return UserModel{
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt.UTC(),
		Address:   u.Address,
		Telephone: u.Telephone,
		Pesel:     u.PESEL,
	}
}

func implantModelToModel(im ImplantModel) model.Implant {
	i := model.Implant{
		ID:            im.ID,
		Type:          im.Type,
		PlacementDate: im.PlacementDate.UTC(),
		UserID:        im.UserID,
	}
	if im.Measurements != nil {
		i.Measurements = make([]model.Measurement, 0, len(im.Measurements))
		for _, m := range im.Measurements {
			i.Measurements = append(i.Measurements, measurementModelToModel(*m))
		}
	}
	return i
}

func implantToModel(i model.Implant) ImplantModel {
	return ImplantModel{
		Type:          i.Type,
		PlacementDate: i.PlacementDate.UTC(),
		UserID:        i.UserID,
	}
}

func measurementModelToModel(mm MeasurementModel) model.Measurement {
	return model.Measurement{
		Number:    mm.Number,
		Time:      mm.Time.UTC(),
		Steps:     mm.Steps,
		ImplantID: mm.ImplantID,
	}
}

func measurementToModel(m model.Measurement) MeasurementModel {
	return MeasurementModel{
		Time:      m.Time.UTC(),
		Steps:     m.Steps,
		ImplantID: m.ImplantID,
	}
}

// AddUserBun inserts a user and returns the assigned id.
func AddUserBun(ctx context.Context, bdb bun.IDB, u model.User) (int64, error) {
	um := userToModel(u)
	if _, err := bdb.NewInsert().Model(&um).Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return um.ID, nil
}

// GetUserBun returns the user with the given id or (nil, nil).
func GetUserBun(ctx context.Context, bdb bun.IDB, id int64) (*model.User, error) {
	um := UserModel{ID: id}
	if err := bdb.NewSelect().Model(&um).WherePK().Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u := userModelToModel(um)
	return &u, nil
}

// ListUsersBun returns all users ordered by id. With withImplants set the
// implants of every user are loaded in a second query.
func ListUsersBun(ctx context.Context, bdb bun.IDB, withImplants bool) ([]model.User, error) {
	var ums []UserModel
	q := bdb.NewSelect().Model(&ums).Order("id")
	if withImplants {
		q = q.Relation("Implants", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("id")
		})
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(ums))
	for _, um := range ums {
		u := userModelToModel(um)
		if withImplants && u.Implants == nil {
			u.Implants = []model.Implant{}
		}
		out = append(out, u)
	}
	return out, nil
}

// AddImplantBun inserts an implant and returns the assigned id.
func AddImplantBun(ctx context.Context, bdb bun.IDB, i model.Implant) (int64, error) {
	im := implantToModel(i)
	if _, err := bdb.NewInsert().Model(&im).Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return im.ID, nil
}

// GetImplantBun returns the implant with the given id or (nil, nil).
func GetImplantBun(ctx context.Context, bdb bun.IDB, id int64) (*model.Implant, error) {
	im := ImplantModel{ID: id}
	if err := bdb.NewSelect().Model(&im).WherePK().Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	i := implantModelToModel(im)
	return &i, nil
}

// ListImplantsBun returns all implants ordered by id, optionally with their
// measurements.
func ListImplantsBun(ctx context.Context, bdb bun.IDB, withMeasurements bool) ([]model.Implant, error) {
	var ims []ImplantModel
	q := bdb.NewSelect().Model(&ims).Order("id")
	if withMeasurements {
		q = q.Relation("Measurements", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("number")
		})
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Implant, 0, len(ims))
	for _, im := range ims {
		i := implantModelToModel(im)
		if withMeasurements && i.Measurements == nil {
			i.Measurements = []model.Measurement{}
		}
		out = append(out, i)
	}
	return out, nil
}

// AddMeasurementBun inserts a measurement and returns its number.
func AddMeasurementBun(ctx context.Context, bdb bun.IDB, m model.Measurement) (int64, error) {
	mm := measurementToModel(m)
	if _, err := bdb.NewInsert().Model(&mm).Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return mm.Number, nil
}

// GetMeasurementBun returns the measurement with the given number or (nil, nil).
func GetMeasurementBun(ctx context.Context, bdb bun.IDB, number int64) (*model.Measurement, error) {
	mm := MeasurementModel{Number: number}
	if err := bdb.NewSelect().Model(&mm).WherePK().Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m := measurementModelToModel(mm)
	return &m, nil
}

// ListMeasurementsBun returns all measurements ordered by number.
func ListMeasurementsBun(ctx context.Context, bdb bun.IDB) ([]model.Measurement, error) {
	var mms []MeasurementModel
	if err := bdb.NewSelect().Model(&mms).Order("number").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.Measurement, 0, len(mms))
	for _, mm := range mms {
		out = append(out, measurementModelToModel(mm))
	}
	return out, nil
}
