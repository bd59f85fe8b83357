package memorystore

import (
	roomapimodels "booking-backend/models/api/room"
	dbmodels "booking-backend/models/db"
	"sort"
	"strings"
)

type roomStore struct {
	tx
}

func (s *roomStore) Create(rec dbmodels.MeetingRoom) (id string, err error) {
	err = s.run(func(data *state) error {
		rec.BaseModel = newBase(rec.BaseModel)
		data.roomEquipment[rec.ID] = rec.EquipmentIDs()
		rec.Equipment = nil
		data.rooms[rec.ID] = rec
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *roomStore) Save(rec dbmodels.MeetingRoom) error {
	return s.run(func(data *state) error {
		rec.BaseModel = touchBase(rec.BaseModel)
		data.roomEquipment[rec.ID] = rec.EquipmentIDs()
		rec.Equipment = nil
		data.rooms[rec.ID] = rec
		return nil
	})
}

func (s *roomStore) GetByID(id string) (rec *dbmodels.MeetingRoom, err error) {
	err = s.run(func(data *state) error {
		if item, ok := data.rooms[id]; ok {
			item = withEquipment(data, item)
			rec = &item
		}
		return nil
	})
	return rec, err
}

func (s *roomStore) GetForUpdate(id string) (rec *dbmodels.MeetingRoom, err error) {
	err = s.run(func(data *state) error {
		if item, ok := data.rooms[id]; ok {
			rec = &item
		}
		return nil
	})
	return rec, err
}

func (s *roomStore) Delete(id string) error {
	return s.run(func(data *state) error {
		delete(data.roomEquipment, id)
		delete(data.rooms, id)
		return nil
	})
}

func (s *roomStore) List(filter roomapimodels.MeetingRoomFilter) (list []dbmodels.MeetingRoom, err error) {
	err = s.run(func(data *state) error {
		list = paginate(filterRooms(data, filter), filter.Pagination)
		return nil
	})
	return list, err
}

func (s *roomStore) ListCount(filter roomapimodels.MeetingRoomFilter) (count int64, err error) {
	err = s.run(func(data *state) error {
		count = int64(len(filterRooms(data, filter)))
		return nil
	})
	return count, err
}

func filterRooms(data *state, filter roomapimodels.MeetingRoomFilter) []dbmodels.MeetingRoom {
	search := strings.ToLower(filter.Search)
	list := []dbmodels.MeetingRoom{}
	for _, item := range data.rooms {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if filter.MinCapacity > 0 && item.Capacity < filter.MinCapacity {
			continue
		}
		if filter.RequiresApproval != nil && item.RequiresApproval != *filter.RequiresApproval {
			continue
		}
		if filter.EquipmentID != "" && !contains(data.roomEquipment[item.ID], filter.EquipmentID) {
			continue
		}
		list = append(list, withEquipment(data, item))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func withEquipment(data *state, rec dbmodels.MeetingRoom) dbmodels.MeetingRoom {
	rec.Equipment = []dbmodels.Equipment{}
	for _, id := range data.roomEquipment[rec.ID] {
		if item, ok := data.equipment[id]; ok {
			rec.Equipment = append(rec.Equipment, item)
		}
	}
	return rec
}

type equipmentStore struct {
	tx
}

func (s *equipmentStore) Create(rec dbmodels.Equipment) (id string, err error) {
	err = s.run(func(data *state) error {
		rec.BaseModel = newBase(rec.BaseModel)
		data.equipment[rec.ID] = rec
		return nil
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *equipmentStore) GetByIDs(ids []string) (list []dbmodels.Equipment, err error) {
	list = []dbmodels.Equipment{}
	err = s.run(func(data *state) error {
		seen := map[string]bool{}
		for _, id := range ids {
			if item, ok := data.equipment[id]; ok && !seen[id] {
				seen[id] = true
				list = append(list, item)
			}
		}
		return nil
	})
	return list, err
}

func (s *equipmentStore) FindByName(name string) (rec *dbmodels.Equipment, err error) {
	err = s.run(func(data *state) error {
		for _, item := range data.equipment {
			if strings.EqualFold(item.Name, name) {
				found := item
				rec = &found
				return nil
			}
		}
		return nil
	})
	return rec, err
}

func (s *equipmentStore) Delete(id string) error {
	return s.run(func(data *state) error {
		for roomID, ids := range data.roomEquipment {
			rest := make([]string, 0, len(ids))
			for _, item := range ids {
				if item != id {
					rest = append(rest, item)
				}
			}
			data.roomEquipment[roomID] = rest
		}
		delete(data.equipment, id)
		return nil
	})
}

func (s *equipmentStore) List() (list []dbmodels.Equipment, err error) {
	list = []dbmodels.Equipment{}
	err = s.run(func(data *state) error {
		for _, item := range data.equipment {
			list = append(list, item)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list, err
}
