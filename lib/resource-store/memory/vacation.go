package memorystore

import (
	"booking-backend/models"
	vacationapimodels "booking-backend/models/api/vacation"
	dbmodels "booking-backend/models/db"
	"sort"
)

type vacationStore struct {
	tx
}

func (s *vacationStore) Create(rec dbmodels.VacationRequest) (id string, err error) {
	err = s.run(func(data *state) error {
		rec.BaseModel = newBase(rec.BaseModel)
		data.vacations[rec.ID] = stripVacation(rec)
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *vacationStore) Save(rec dbmodels.VacationRequest) error {
	return s.run(func(data *state) error {
		rec.BaseModel = touchBase(rec.BaseModel)
		data.vacations[rec.ID] = stripVacation(rec)
		return nil
	})
}

func (s *vacationStore) GetByID(id string) (rec *dbmodels.VacationRequest, err error) {
	err = s.run(func(data *state) error {
		if item, ok := data.vacations[id]; ok {
			item = fillVacation(data, item)
			rec = &item
		}
		return nil
	})
	return rec, err
}

// Delete вложения удаляются каскадно, как внешним ключом в базе
func (s *vacationStore) Delete(id string) error {
	return s.run(func(data *state) error {
		deleteAttachments(data, id)
		delete(data.vacations, id)
		return nil
	})
}

func (s *vacationStore) ListByEmployee(employeeID string) (list []dbmodels.VacationRequest, err error) {
	err = s.run(func(data *state) error {
		list = filterVacations(data, vacationapimodels.VacationFilter{EmployeeID: employeeID})
		for n := range list {
			list[n] = fillVacation(data, list[n])
		}
		return nil
	})
	return list, err
}

func (s *vacationStore) List(filter vacationapimodels.VacationFilter) (list []dbmodels.VacationRequest, err error) {
	err = s.run(func(data *state) error {
		list = paginate(filterVacations(data, filter), filter.Pagination)
		for n := range list {
			list[n] = fillVacation(data, list[n])
		}
		return nil
	})
	return list, err
}

func (s *vacationStore) ListCount(filter vacationapimodels.VacationFilter) (count int64, err error) {
	err = s.run(func(data *state) error {
		count = int64(len(filterVacations(data, filter)))
		return nil
	})
	return count, err
}

func (s *vacationStore) CountByEmployee(employeeID string) (count int64, err error) {
	err = s.run(func(data *state) error {
		count = int64(len(filterVacations(data, vacationapimodels.VacationFilter{EmployeeID: employeeID})))
		return nil
	})
	return count, err
}

func filterVacations(data *state, filter vacationapimodels.VacationFilter) []dbmodels.VacationRequest {
	list := []dbmodels.VacationRequest{}
	for _, item := range data.vacations {
		if filter.EmployeeID != "" && (item.EmployeeID == nil || *item.EmployeeID != filter.EmployeeID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, item.Status) {
			continue
		}
		if filter.Type != "" && item.Type != filter.Type {
			continue
		}
		list = append(list, item)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartDate.Equal(list[j].StartDate) {
			return list[i].ID < list[j].ID
		}
		return list[i].StartDate.After(list[j].StartDate)
	})
	return list
}

func stripVacation(rec dbmodels.VacationRequest) dbmodels.VacationRequest {
	rec.Employee = nil
	rec.Attachments = nil
	if rec.EmployeeID != nil {
		employeeID := *rec.EmployeeID
		rec.EmployeeID = &employeeID
	}
	return rec
}

func fillVacation(data *state, rec dbmodels.VacationRequest) dbmodels.VacationRequest {
	rec = stripVacation(rec)
	if rec.EmployeeID != nil {
		if employee, ok := data.employees[*rec.EmployeeID]; ok {
			rec.Employee = &employee
		}
	}
	rec.Attachments = listAttachments(data, rec.ID)
	return rec
}

func containsStatus(list []models.RequestStatus, status models.RequestStatus) bool {
	for _, item := range list {
		if item == status {
			return true
		}
	}
	return false
}

type attachmentStore struct {
	tx
}

func (s *attachmentStore) Create(rec dbmodels.Attachment) (id string, err error) {
	err = s.run(func(data *state) error {
		rec.BaseModel = newBase(rec.BaseModel)
		if _, ok := data.vacations[rec.VacationRequestID]; !ok {
			return errRecordNotFound
		}
		data.attachments[rec.ID] = rec
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *attachmentStore) ListByRequest(vacationRequestID string) (list []dbmodels.Attachment, err error) {
	err = s.run(func(data *state) error {
		list = listAttachments(data, vacationRequestID)
		return nil
	})
	return list, err
}

func (s *attachmentStore) DeleteByRequest(vacationRequestID string) error {
	return s.run(func(data *state) error {
		deleteAttachments(data, vacationRequestID)
		return nil
	})
}

func listAttachments(data *state, vacationRequestID string) []dbmodels.Attachment {
	list := []dbmodels.Attachment{}
	for _, item := range data.attachments {
		if item.VacationRequestID == vacationRequestID {
			list = append(list, item)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].UploadedAt.Equal(list[j].UploadedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].UploadedAt.Before(list[j].UploadedAt)
	})
	return list
}

func deleteAttachments(data *state, vacationRequestID string) {
	for id, item := range data.attachments {
		if item.VacationRequestID == vacationRequestID {
			delete(data.attachments, id)
		}
	}
}
