package db

import (
	"booking-backend/config"
	employeehandler "booking-backend/lib/employee"
	"booking-backend/models"
	employeeapimodels "booking-backend/models/api/employee"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addAdmin(employeehandler.Instance)
}

// addAdmin заводит HR сотрудника из настроек, если его еще нет
func addAdmin(provider employeehandler.Provider) {
	if config.Conf.Admin.Email == "" {
		log.Warn("администратор не добавлен, отсутвует настройка ADMIN_EMAIL")
		return
	}
	existedRec, err := provider.FindByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if existedRec != nil {
		return
	}
	_, err = provider.Create(employeeapimodels.EmployeeData{
		Name:            config.Conf.Admin.Name,
		Email:           config.Conf.Admin.Email,
		Role:            models.EmployeeRoleHR,
		VacationBalance: config.Conf.Admin.VacationBalance,
	})
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	log.WithField("email", config.Conf.Admin.Email).Info("добавлен администратор")
}
