package models

import "github.com/pkg/errors"

// EmployeeRole роль сотрудника (тип подразделения)
type EmployeeRole string

const (
	EmployeeRoleEmployee EmployeeRole = "EMPLOYEE"
	EmployeeRoleHR       EmployeeRole = "HR"
)

var roleHumanName = map[EmployeeRole]string{
	EmployeeRoleEmployee: "Сотрудник",
	EmployeeRoleHR:       "HR",
}

func (r EmployeeRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r EmployeeRole) Validate() error {
	if _, exist := roleHumanName[r]; !exist {
		return errors.Errorf("некорректная роль сотрудника: %v", r)
	}
	return nil
}

func (r EmployeeRole) IsHR() bool {
	return r == EmployeeRoleHR
}

const SystemUser = "Система"
