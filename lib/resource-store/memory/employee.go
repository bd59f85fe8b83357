package memorystore

import (
	employeeapimodels "booking-backend/models/api/employee"
	dbmodels "booking-backend/models/db"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type employeeStore struct {
	tx
}

func (s *employeeStore) Create(rec dbmodels.Employee) (id string, err error) {
	err = s.run(func(data *state) error {
		rec.BaseModel = newBase(rec.BaseModel)
		if err := checkEmployee(data, rec); err != nil {
			return err
		}
		data.employees[rec.ID] = rec
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *employeeStore) Save(rec dbmodels.Employee) error {
	return s.run(func(data *state) error {
		rec.BaseModel = touchBase(rec.BaseModel)
		if err := checkEmployee(data, rec); err != nil {
			return err
		}
		data.employees[rec.ID] = rec
		return nil
	})
}

func (s *employeeStore) GetByID(id string) (rec *dbmodels.Employee, err error) {
	err = s.run(func(data *state) error {
		if item, ok := data.employees[id]; ok {
			rec = &item
		}
		return nil
	})
	return rec, err
}

func (s *employeeStore) GetForUpdate(id string) (*dbmodels.Employee, error) {
	return s.GetByID(id)
}

func (s *employeeStore) GetByIDs(ids []string) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	err = s.run(func(data *state) error {
		for _, id := range ids {
			if item, ok := data.employees[id]; ok && !containsEmployee(list, id) {
				list = append(list, item)
			}
		}
		return nil
	})
	return list, err
}

func (s *employeeStore) FindByEmail(email string) (rec *dbmodels.Employee, err error) {
	err = s.run(func(data *state) error {
		for _, item := range data.employees {
			if strings.EqualFold(item.Email, email) {
				found := item
				rec = &found
				return nil
			}
		}
		return nil
	})
	return rec, err
}

func (s *employeeStore) UpdateBalance(id string, balance int) error {
	return s.run(func(data *state) error {
		item, ok := data.employees[id]
		if !ok {
			return errRecordNotFound
		}
		if balance < 0 {
			return errors.New("остаток отпуска не может быть отрицательным")
		}
		item.VacationBalance = balance
		item.BaseModel = touchBase(item.BaseModel)
		data.employees[id] = item
		return nil
	})
}

func (s *employeeStore) Delete(id string) error {
	return s.run(func(data *state) error {
		delete(data.employees, id)
		return nil
	})
}

func (s *employeeStore) List(filter employeeapimodels.EmployeeFilter) (list []dbmodels.Employee, err error) {
	err = s.run(func(data *state) error {
		list = paginate(filterEmployees(data, filter), filter.Pagination)
		return nil
	})
	return list, err
}

func (s *employeeStore) ListCount(filter employeeapimodels.EmployeeFilter) (count int64, err error) {
	err = s.run(func(data *state) error {
		count = int64(len(filterEmployees(data, filter)))
		return nil
	})
	return count, err
}

func filterEmployees(data *state, filter employeeapimodels.EmployeeFilter) []dbmodels.Employee {
	search := strings.ToLower(filter.Search)
	list := []dbmodels.Employee{}
	for _, item := range data.employees {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Email), search) {
			continue
		}
		if filter.Role != "" && item.Role != filter.Role {
			continue
		}
		list = append(list, item)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func checkEmployee(data *state, rec dbmodels.Employee) error {
	if rec.VacationBalance < 0 {
		return errors.New("остаток отпуска не может быть отрицательным")
	}
	for id, item := range data.employees {
		if id != rec.ID && strings.EqualFold(item.Email, rec.Email) {
			return errors.Errorf("сотрудник с почтой %v уже существует", rec.Email)
		}
	}
	return nil
}

func containsEmployee(list []dbmodels.Employee, id string) bool {
	for _, item := range list {
		if item.ID == id {
			return true
		}
	}
	return false
}
