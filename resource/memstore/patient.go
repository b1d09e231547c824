package memstore

import (
	"strings"
	"sync"
	"time"

	C "github.com/lifesevatra/doctor-server/constant"
	"github.com/lifesevatra/doctor-server/model"
)

// PatientStore 入院患者記録のインメモリストア。
//
// 全ての操作は単一のロックにより直列化されるため、同一患者に対する
// read-modify-writeが交錯することはない。取得系の戻り値は全て複製であり、
// 呼び出し側が保持してもストア内の記録には影響しない。
type PatientStore struct {
	mutex   sync.RWMutex
	records map[int]*model.AdmittedPatient
	order   []int
}

// NewPatientStore 初期データからストアを構築する。レコードは複製して保持する。
// 同一IDが重複する場合、後のレコードで上書きされる。
func NewPatientStore(seed []*model.AdmittedPatient) *PatientStore {
	s := &PatientStore{
		records: map[int]*model.AdmittedPatient{},
		order:   []int{},
	}

	for _, p := range seed {
		if _, ok := s.records[p.Id]; !ok {
			s.order = append(s.order, p.Id)
		}
		s.records[p.Id] = p.Clone()
	}

	return s
}

// ListByDoctor 担当医名が一致する患者を登録順に取得する。名前は大文字小文字を区別して比較する。
func (s *PatientStore) ListByDoctor(doctor string) []*model.AdmittedPatient {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := []*model.AdmittedPatient{}

	for _, id := range s.order {
		if p := s.records[id]; p.Doctor == doctor {
			records = append(records, p.Clone())
		}
	}

	return records
}

// ListByDoctorFiltered 担当医名に加えて絞り込み条件で患者を取得する。
// 条件はいずれも任意で、AND条件として扱われる。容態は大文字小文字を区別しない完全一致。
func (s *PatientStore) ListByDoctorFiltered(doctor string, filter model.PatientFilter) []*model.AdmittedPatient {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := []*model.AdmittedPatient{}

	for _, id := range s.order {
		p := s.records[id]

		if p.Doctor != doctor {
			continue
		}
		if filter.Condition != nil && !strings.EqualFold(string(p.Condition), *filter.Condition) {
			continue
		}
		if filter.MinSeverity != nil && p.SeverityScore < *filter.MinSeverity {
			continue
		}
		if filter.MaxSeverity != nil && p.SeverityScore > *filter.MaxSeverity {
			continue
		}

		records = append(records, p.Clone())
	}

	return records
}

// Fetch IDから患者記録を取得する。存在しない場合nilを返す。
func (s *PatientStore) Fetch(id int) *model.AdmittedPatient {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if p, ok := s.records[id]; ok {
		return p.Clone()
	}

	return nil
}

// UpdateVitals パッチに含まれるバイタルのみをマージし、マージ後の全バイタルから
// 重症度と容態を再計算する。計測日時と更新日時も更新する。
// 収縮期・拡張期血圧は個別にマージされる。存在しないIDの場合、何も変更せずnilを返す。
func (s *PatientStore) UpdateVitals(id int, patch *model.VitalsPatch, now time.Time) *model.AdmittedPatient {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, ok := s.records[id]
	if !ok {
		return nil
	}

	if patch.HeartRate != nil {
		v := *patch.HeartRate
		p.HeartRate = &v
	}
	if patch.Spo2 != nil {
		v := *patch.Spo2
		p.Spo2 = &v
	}
	if patch.RespRate != nil {
		v := *patch.RespRate
		p.RespRate = &v
	}
	if patch.Temperature != nil {
		v := *patch.Temperature
		p.Temperature = &v
	}
	if patch.BpSystolic != nil {
		v := *patch.BpSystolic
		p.BloodPressure.Systolic = &v
	}
	if patch.BpDiastolic != nil {
		v := *patch.BpDiastolic
		p.BloodPressure.Diastolic = &v
	}

	p.SeverityScore = C.DeriveSeverity(
		p.HeartRate, p.Spo2, p.RespRate,
		p.Temperature, p.BloodPressure.Systolic, p.BloodPressure.Diastolic,
	)
	p.Condition = C.DeriveCondition(p.SeverityScore)

	p.MeasuredTime = now
	p.ModifiedAt = now

	return p.Clone()
}

// UpdateClinicalInfo パッチで指定された自由記述フィールドのみをマージする。
// 重症度の再計算は行わず、更新日時のみ更新する。存在しないIDの場合、何も変更せずnilを返す。
func (s *PatientStore) UpdateClinicalInfo(id int, patch *model.ClinicalInfoPatch, now time.Time) *model.AdmittedPatient {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, ok := s.records[id]
	if !ok {
		return nil
	}

	mergeText(&p.PresentingAilment, patch.PresentingAilment)
	mergeText(&p.MedicalHistory, patch.MedicalHistory)
	mergeText(&p.ClinicalNotes, patch.ClinicalNotes)
	mergeText(&p.LabResults, patch.LabResults)

	p.ModifiedAt = now

	return p.Clone()
}

func mergeText(field **string, value model.OptionalText) {
	if !value.Valid {
		return
	}

	if value.Value == nil {
		*field = nil
	} else {
		v := *value.Value
		*field = &v
	}
}
