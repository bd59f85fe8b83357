package models

import "github.com/pkg/errors"

type VacationType string

const (
	VacationTypeAnnual VacationType = "ANNUAL"
	VacationTypeSick   VacationType = "SICK"
)

var vacationTypeHumanName = map[VacationType]string{
	VacationTypeAnnual: "Ежегодный отпуск",
	VacationTypeSick:   "Больничный",
}

func (t VacationType) ToHuman() string {
	if human, exist := vacationTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t VacationType) Validate() error {
	if _, exist := vacationTypeHumanName[t]; !exist {
		return errors.Errorf("некорректный тип отпуска: %v", t)
	}
	return nil
}
