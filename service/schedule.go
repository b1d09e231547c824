package service

import (
	"fmt"

	C "github.com/lifesevatra/doctor-server/constant"
	"github.com/lifesevatra/doctor-server/model"
	"github.com/lifesevatra/doctor-server/resource/memstore"
)

type ScheduleService struct {
	*Service
	Store *memstore.ScheduleStore
}

// 本日の予定一覧を登録順に取得する。
func (s *ScheduleService) List() ([]*model.ScheduleSlot, error) {
	return s.Store.List(), nil
}

// 予定の状態を更新する。
func (s *ScheduleService) UpdateStatus(id int, status C.ScheduleStatus) (*model.ScheduleSlot, error) {
	known := false

	for _, st := range C.ScheduleStatuses {
		if st == status {
			known = true
			break
		}
	}

	if !known {
		return nil, C.INVALID_SCHEDULE_STATUS(string(status))
	}

	if r := s.Store.UpdateStatus(id, status); r == nil {
		return nil, C.NewNotFoundError(
			"schedule_slot_not_found",
			fmt.Sprintf("Schedule slot %d is not found", id),
			map[string]interface{}{},
		)
	} else {
		return r, nil
	}
}
