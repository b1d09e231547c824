package memstore

import (
	"sync"

	"github.com/lifesevatra/doctor-server/model"
)

// ProfileStore ログイン中の医師プロフィールのインメモリストア。
type ProfileStore struct {
	mutex  sync.RWMutex
	doctor model.DoctorInfo
}

// NewProfileStore 初期データからストアを構築する。
func NewProfileStore(doctor model.DoctorInfo) *ProfileStore {
	return &ProfileStore{doctor: doctor}
}

// Get プロフィールを取得する。
func (s *ProfileStore) Get() model.DoctorInfo {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.doctor
}

// Update パッチで指定されたフィールドのみをマージする。バリデーションは行わない。
func (s *ProfileStore) Update(patch *model.ProfilePatch) model.DoctorInfo {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if patch.FullName != nil {
		s.doctor.FullName = *patch.FullName
	}
	if patch.Specialization != nil {
		s.doctor.Specialization = *patch.Specialization
	}
	if patch.Qualification != nil {
		s.doctor.Qualification = *patch.Qualification
	}
	if patch.Department != nil {
		s.doctor.Department = *patch.Department
	}
	if patch.Email != nil {
		s.doctor.Email = *patch.Email
	}
	if patch.Phone != nil {
		s.doctor.Phone = *patch.Phone
	}

	return s.doctor
}
