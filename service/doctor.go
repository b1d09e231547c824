package service

import (
	"github.com/lifesevatra/doctor-server/model"
	"github.com/lifesevatra/doctor-server/resource/memstore"
)

type DoctorService struct {
	*Service
	Store *memstore.ProfileStore
}

// ログイン中の医師のプロフィールを取得する。
func (s *DoctorService) Profile() (*model.DoctorInfo, error) {
	d := s.Store.Get()
	return &d, nil
}

// プロフィールを更新する。パッチで指定されたフィールドのみをマージし、バリデーションは行わない。
func (s *DoctorService) UpdateProfile(patch *model.ProfilePatch) (*model.DoctorInfo, error) {
	if patch == nil {
		patch = &model.ProfilePatch{}
	}

	d := s.Store.Update(patch)
	return &d, nil
}
