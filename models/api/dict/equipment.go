package dictapimodels

import (
	dbmodels "booking-backend/models/db"

	"github.com/pkg/errors"
)

type EquipmentData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsAvailable bool   `json:"is_available"`
}

type EquipmentView struct {
	EquipmentData
	ID string `json:"id"`
}

func (e EquipmentData) Validate() error {
	if e.Name == "" {
		return errors.New("не указано название оборудования")
	}
	if len([]rune(e.Name)) > 100 {
		return errors.New("название оборудования длиннее 100 символов")
	}
	if len([]rune(e.Description)) > 500 {
		return errors.New("описание оборудования длиннее 500 символов")
	}
	return nil
}

func EquipmentConvert(rec dbmodels.Equipment) EquipmentView {
	return EquipmentView{
		EquipmentData: EquipmentData{
			Name:        rec.Name,
			Description: rec.Description,
			IsAvailable: rec.IsAvailable,
		},
		ID: rec.ID,
	}
}
