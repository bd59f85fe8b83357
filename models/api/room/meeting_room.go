package roomapimodels

import (
	apimodels "booking-backend/models/api"
	dictapimodels "booking-backend/models/api/dict"
	dbmodels "booking-backend/models/db"

	"github.com/pkg/errors"
)

const (
	MinCapacity = 1
	MaxCapacity = 500
)

type MeetingRoomData struct {
	Name             string   `json:"name"`              // название
	Capacity         int      `json:"capacity"`          // вместимость 1..500
	RequiresApproval bool     `json:"requires_approval"` // бронь требует согласования
	EquipmentIDs     []string `json:"equipment_ids"`     // оборудование
}

func (r MeetingRoomData) Validate() error {
	if r.Name == "" {
		return errors.New("не указано название переговорной")
	}
	if len([]rune(r.Name)) > 100 {
		return errors.New("название переговорной длиннее 100 символов")
	}
	if r.Capacity < MinCapacity || r.Capacity > MaxCapacity {
		return errors.Errorf("вместимость переговорной должна быть от %v до %v", MinCapacity, MaxCapacity)
	}
	return nil
}

type MeetingRoomView struct {
	ID               string                        `json:"id"`
	Name             string                        `json:"name"`
	Capacity         int                           `json:"capacity"`
	RequiresApproval bool                          `json:"requires_approval"`
	Equipment        []dictapimodels.EquipmentView `json:"equipment"`
}

type MeetingRoomShortView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	RequiresApproval bool   `json:"requires_approval"`
}

type MeetingRoomFilter struct {
	apimodels.Pagination
	Search           string `json:"search"`            // поиск по названию
	MinCapacity      int    `json:"min_capacity"`      // вместимость не меньше
	RequiresApproval *bool  `json:"requires_approval"` // политика согласования
	EquipmentID      string `json:"equipment_id"`      // есть оборудование
}

func (f MeetingRoomFilter) Validate() error {
	if f.MinCapacity < 0 {
		return errors.New("некорректная вместимость в фильтре")
	}
	return nil
}

func MeetingRoomConvert(rec dbmodels.MeetingRoom) MeetingRoomView {
	result := MeetingRoomView{
		ID:               rec.ID,
		Name:             rec.Name,
		Capacity:         rec.Capacity,
		RequiresApproval: rec.RequiresApproval,
		Equipment:        make([]dictapimodels.EquipmentView, 0, len(rec.Equipment)),
	}
	for _, item := range rec.Equipment {
		result.Equipment = append(result.Equipment, dictapimodels.EquipmentConvert(item))
	}
	return result
}

func MeetingRoomShortConvert(rec dbmodels.MeetingRoom) MeetingRoomShortView {
	return MeetingRoomShortView{
		ID:               rec.ID,
		Name:             rec.Name,
		RequiresApproval: rec.RequiresApproval,
	}
}
