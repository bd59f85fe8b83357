package memorystore

import (
	resourcestore "booking-backend/lib/resource-store"
	apimodels "booking-backend/models/api"
	dbmodels "booking-backend/models/db"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var errRecordNotFound = errors.New("запись не найдена")

// Store хранилище в памяти процесса для тестов и локального запуска.
// Транзакции выполняются последовательно над копией данных
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	employees     map[string]dbmodels.Employee
	rooms         map[string]dbmodels.MeetingRoom
	equipment     map[string]dbmodels.Equipment
	roomEquipment map[string][]string
	bookings      map[string]dbmodels.BookingRequest
	invites       map[string][]string
	vacations     map[string]dbmodels.VacationRequest
	attachments   map[string]dbmodels.Attachment
}

func NewInstance() *Store {
	return &Store{
		data: newState(),
	}
}

func newState() *state {
	return &state{
		employees:     map[string]dbmodels.Employee{},
		rooms:         map[string]dbmodels.MeetingRoom{},
		equipment:     map[string]dbmodels.Equipment{},
		roomEquipment: map[string][]string{},
		bookings:      map[string]dbmodels.BookingRequest{},
		invites:       map[string][]string{},
		vacations:     map[string]dbmodels.VacationRequest{},
		attachments:   map[string]dbmodels.Attachment{},
	}
}

func (s *state) clone() *state {
	result := newState()
	for k, v := range s.employees {
		result.employees[k] = v
	}
	for k, v := range s.rooms {
		result.rooms[k] = v
	}
	for k, v := range s.equipment {
		result.equipment[k] = v
	}
	for k, v := range s.roomEquipment {
		result.roomEquipment[k] = append([]string{}, v...)
	}
	for k, v := range s.bookings {
		result.bookings[k] = v
	}
	for k, v := range s.invites {
		result.invites[k] = append([]string{}, v...)
	}
	for k, v := range s.vacations {
		result.vacations[k] = v
	}
	for k, v := range s.attachments {
		result.attachments[k] = v
	}
	return result
}

func (s *Store) Stores() resourcestore.Stores {
	return newStores(tx{store: s})
}

func (s *Store) Transaction(fn func(stores resourcestore.Stores) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.data.clone()
	err := fn(newStores(tx{data: snapshot}))
	if err != nil {
		return err
	}
	s.data = snapshot
	return nil
}

func newStores(t tx) resourcestore.Stores {
	return resourcestore.Stores{
		Employee:    &employeeStore{t},
		MeetingRoom: &roomStore{t},
		Equipment:   &equipmentStore{t},
		Booking:     &bookingStore{t},
		Vacation:    &vacationStore{t},
		Attachment:  &attachmentStore{t},
	}
}

// tx вне транзакции каждая операция блокирует Store, внутри работает с копией
type tx struct {
	store *Store
	data  *state
}

func (t tx) run(fn func(data *state) error) error {
	if t.data != nil {
		return fn(t.data)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(t.store.data)
}

func newBase(base dbmodels.BaseModel) dbmodels.BaseModel {
	now := time.Now()
	base.EnsureID()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	if base.UpdatedAt.IsZero() {
		base.UpdatedAt = now
	}
	return base
}

func touchBase(base dbmodels.BaseModel) dbmodels.BaseModel {
	if base.CreatedAt.IsZero() {
		base.CreatedAt = time.Now()
	}
	base.UpdatedAt = time.Now()
	return base
}

func paginate[T any](list []T, pagination apimodels.Pagination) []T {
	page, limit := pagination.GetPage()
	from := (page - 1) * limit
	if from >= len(list) {
		return []T{}
	}
	to := from + limit
	if to > len(list) {
		to = len(list)
	}
	return list[from:to]
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
