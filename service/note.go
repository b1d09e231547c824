package service

import (
	"time"

	C "github.com/lifesevatra/doctor-server/constant"
	"github.com/lifesevatra/doctor-server/model"
	"github.com/lifesevatra/doctor-server/resource/memstore"
)

type NoteService struct {
	*Service
	Store *memstore.NoteStore
}

// 臨床メモの一覧を作成日時の降順で取得する。
func (s *NoteService) List() ([]*model.ClinicalNote, error) {
	return s.Store.List(), nil
}

// 臨床メモを登録する。IDと作成日時はストアにより採番される。
func (s *NoteService) Add(note *model.ClinicalNote) (*model.ClinicalNote, error) {
	if note == nil || note.Content == "" {
		return nil, C.NewBadRequestError(
			"empty_note",
			"Note content is required",
			map[string]interface{}{},
		)
	}

	now := time.Now()

	return s.Store.Add(note, now), nil
}
