package dbmodels

type MeetingRoom struct {
	BaseModel
	Name             string `gorm:"type:varchar(100)"`
	Capacity         int    `gorm:"check:capacity between 1 and 500"`
	RequiresApproval bool
	Equipment        []Equipment `gorm:"many2many:meeting_room_equipments;"`
}

func (r MeetingRoom) EquipmentIDs() []string {
	result := make([]string, 0, len(r.Equipment))
	for _, item := range r.Equipment {
		result = append(result, item.ID)
	}
	return result
}

type Equipment struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex"`
	Description string `gorm:"type:varchar(500)"`
	IsAvailable bool
}
