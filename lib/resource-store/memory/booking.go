package memorystore

import (
	"booking-backend/lib/utils/apperr"
	bookingapimodels "booking-backend/models/api/booking"
	dbmodels "booking-backend/models/db"
	"sort"
	"time"
)

type bookingStore struct {
	tx
}

func (s *bookingStore) Create(rec dbmodels.BookingRequest) (id string, err error) {
	err = s.run(func(data *state) error {
		rec.BaseModel = newBase(rec.BaseModel)
		if hasOverlap(data, rec) {
			return apperr.ErrTimeOverlap
		}
		data.bookings[rec.ID] = stripBooking(rec)
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *bookingStore) Save(rec dbmodels.BookingRequest) error {
	return s.run(func(data *state) error {
		rec.BaseModel = touchBase(rec.BaseModel)
		if hasOverlap(data, rec) {
			return apperr.ErrTimeOverlap
		}
		data.bookings[rec.ID] = stripBooking(rec)
		return nil
	})
}

func (s *bookingStore) GetByID(id string) (rec *dbmodels.BookingRequest, err error) {
	err = s.run(func(data *state) error {
		if item, ok := data.bookings[id]; ok {
			item = fillBooking(data, item)
			rec = &item
		}
		return nil
	})
	return rec, err
}

func (s *bookingStore) Delete(id string) error {
	return s.run(func(data *state) error {
		delete(data.invites, id)
		delete(data.bookings, id)
		return nil
	})
}

func (s *bookingStore) ExistsOverlap(roomID string, start, end time.Time, excludeID string) (exist bool, err error) {
	err = s.run(func(data *state) error {
		exist = hasOverlap(data, dbmodels.BookingRequest{
			BaseModel:     dbmodels.BaseModel{ID: excludeID},
			StartTime:     start,
			EndTime:       end,
			MeetingRoomID: roomID,
		})
		return nil
	})
	return exist, err
}

func (s *bookingStore) ReplaceInvites(bookingID string, employeeIDs []string) error {
	return s.run(func(data *state) error {
		ids := []string{}
		for _, id := range employeeIDs {
			if !contains(ids, id) {
				ids = append(ids, id)
			}
		}
		data.invites[bookingID] = ids
		return nil
	})
}

func (s *bookingStore) List(filter bookingapimodels.BookingFilter) (list []dbmodels.BookingRequest, err error) {
	err = s.run(func(data *state) error {
		list = paginate(filterBookings(data, filter), filter.Pagination)
		for n := range list {
			list[n] = fillBooking(data, list[n])
		}
		return nil
	})
	return list, err
}

func (s *bookingStore) ListCount(filter bookingapimodels.BookingFilter) (count int64, err error) {
	err = s.run(func(data *state) error {
		count = int64(len(filterBookings(data, filter)))
		return nil
	})
	return count, err
}

func (s *bookingStore) CountByRoom(roomID string) (count int64, err error) {
	err = s.run(func(data *state) error {
		for _, item := range data.bookings {
			if item.MeetingRoomID == roomID {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (s *bookingStore) CountByEmployee(employeeID string) (count int64, err error) {
	err = s.run(func(data *state) error {
		for _, item := range data.bookings {
			if item.EmployeeID == employeeID || contains(data.invites[item.ID], employeeID) {
				count++
			}
		}
		return nil
	})
	return count, err
}

// hasOverlap аналог ограничения EXCLUDE в базе
func hasOverlap(data *state, rec dbmodels.BookingRequest) bool {
	if !rec.BlocksRoom() {
		return false
	}
	for id, item := range data.bookings {
		if id == rec.ID || item.MeetingRoomID != rec.MeetingRoomID || !item.BlocksRoom() {
			continue
		}
		if item.Overlaps(rec.StartTime, rec.EndTime) {
			return true
		}
	}
	return false
}

func filterBookings(data *state, filter bookingapimodels.BookingFilter) []dbmodels.BookingRequest {
	list := []dbmodels.BookingRequest{}
	for _, item := range data.bookings {
		if filter.EmployeeID != "" && item.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.MeetingRoomID != "" && item.MeetingRoomID != filter.MeetingRoomID {
			continue
		}
		if filter.InvitedUserID != "" && !contains(data.invites[item.ID], filter.InvitedUserID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, item.Status) {
			continue
		}
		if filter.From != nil && !item.EndTime.After(*filter.From) {
			continue
		}
		if filter.To != nil && !item.StartTime.Before(*filter.To) {
			continue
		}
		list = append(list, item)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartTime.Equal(list[j].StartTime) {
			return list[i].ID < list[j].ID
		}
		return list[i].StartTime.Before(list[j].StartTime)
	})
	return list
}

func stripBooking(rec dbmodels.BookingRequest) dbmodels.BookingRequest {
	rec.Employee = nil
	rec.MeetingRoom = nil
	rec.InvitedUsers = nil
	return rec
}

func fillBooking(data *state, rec dbmodels.BookingRequest) dbmodels.BookingRequest {
	if employee, ok := data.employees[rec.EmployeeID]; ok {
		rec.Employee = &employee
	}
	if room, ok := data.rooms[rec.MeetingRoomID]; ok {
		rec.MeetingRoom = &room
	}
	rec.InvitedUsers = []dbmodels.Employee{}
	for _, id := range data.invites[rec.ID] {
		if employee, ok := data.employees[id]; ok {
			rec.InvitedUsers = append(rec.InvitedUsers, employee)
		}
	}
	return rec
}
