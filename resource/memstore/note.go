package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/lifesevatra/doctor-server/model"
)

// NoteStore 臨床メモのインメモリストア。保持順は先頭挿入の登録順であり、
// 作成日時による並び替えは取得時にのみ行われる。
type NoteStore struct {
	mutex  sync.RWMutex
	notes  []*model.ClinicalNote
	nextId int
}

// NewNoteStore 初期データからストアを構築する。採番は既存の最大ID+1から始まる。
func NewNoteStore(seed []*model.ClinicalNote) *NoteStore {
	s := &NoteStore{
		notes:  []*model.ClinicalNote{},
		nextId: 1,
	}

	for _, n := range seed {
		c := *n
		s.notes = append(s.notes, &c)

		if n.Id >= s.nextId {
			s.nextId = n.Id + 1
		}
	}

	return s
}

// List メモの一覧を作成日時の降順で取得する。
// 同時刻のメモは保持順(新しいものが先頭)を保つ。
func (s *NoteStore) List() []*model.ClinicalNote {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	notes := make([]*model.ClinicalNote, 0, len(s.notes))

	for _, n := range s.notes {
		c := *n
		notes = append(notes, &c)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	return notes
}

// Add メモを登録する。IDを採番し作成日時を設定した上で先頭に追加する。
func (s *NoteStore) Add(note *model.ClinicalNote, now time.Time) *model.ClinicalNote {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	n := *note
	n.Id = s.nextId
	n.CreatedAt = now

	s.nextId++

	s.notes = append([]*model.ClinicalNote{&n}, s.notes...)

	c := n
	return &c
}
