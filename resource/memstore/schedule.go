package memstore

import (
	"sync"

	C "github.com/lifesevatra/doctor-server/constant"
	"github.com/lifesevatra/doctor-server/model"
)

// ScheduleStore 本日の予定のインメモリストア。
type ScheduleStore struct {
	mutex sync.RWMutex
	slots map[int]*model.ScheduleSlot
	order []int
}

// NewScheduleStore 初期データからストアを構築する。
func NewScheduleStore(seed []*model.ScheduleSlot) *ScheduleStore {
	s := &ScheduleStore{
		slots: map[int]*model.ScheduleSlot{},
		order: []int{},
	}

	for _, slot := range seed {
		if _, ok := s.slots[slot.Id]; !ok {
			s.order = append(s.order, slot.Id)
		}
		c := *slot
		s.slots[slot.Id] = &c
	}

	return s
}

// List 予定の一覧を登録順に取得する。
func (s *ScheduleStore) List() []*model.ScheduleSlot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	slots := []*model.ScheduleSlot{}

	for _, id := range s.order {
		c := *s.slots[id]
		slots = append(slots, &c)
	}

	return slots
}

// UpdateStatus 予定の状態を更新する。存在しないIDの場合nilを返す。
func (s *ScheduleStore) UpdateStatus(id int, status C.ScheduleStatus) *model.ScheduleSlot {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil
	}

	slot.Status = status

	c := *slot
	return &c
}
