package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	C "github.com/lifesevatra/doctor-server/constant"
	"github.com/lifesevatra/doctor-server/lib"
	"github.com/lifesevatra/doctor-server/model"
	"github.com/lifesevatra/doctor-server/resource/memstore"
)

type PatientService struct {
	*Service
	Store     *memstore.PatientStore
	Localizer *lib.Localizer
}

// 担当患者の一覧を登録順に取得する。
func (s *PatientService) List(doctor string) ([]*model.AdmittedPatient, error) {
	return s.Store.ListByDoctor(doctor), nil
}

// 絞り込み条件を指定して担当患者の一覧を取得する。条件はいずれも任意で、AND条件として扱われる。
func (s *PatientService) ListFiltered(doctor string, filter model.PatientFilter) ([]*model.AdmittedPatient, error) {
	return s.Store.ListByDoctorFiltered(doctor, filter), nil
}

// IDから患者記録を取得する。
func (s *PatientService) Fetch(id int) (*model.AdmittedPatient, error) {
	if r := s.Store.Fetch(id); r == nil {
		return nil, C.NewNotFoundError(
			"patient_not_found",
			fmt.Sprintf("Patient %d is not found", id),
			map[string]interface{}{},
		)
	} else {
		return r, nil
	}
}

// 患者のバイタルを更新する。
// パッチに含まれるフィールドのみをマージし、マージ後の全バイタルから重症度と容態を再計算する。
func (s *PatientService) UpdateVitals(id int, patch *model.VitalsPatch) (*model.AdmittedPatient, error) {
	if patch == nil {
		return nil, C.NewBadRequestError(
			"invalid_vitals_payload",
			"Vitals payload is required",
			map[string]interface{}{},
		)
	}

	if e := validateVitals(patch); e != nil {
		return nil, e
	}

	now := time.Now()

	if r := s.Store.UpdateVitals(id, patch, now); r == nil {
		return nil, C.NewNotFoundError(
			"patient_not_found",
			fmt.Sprintf("Patient %d is not found", id),
			map[string]interface{}{},
		)
	} else {
		s.logger().WithFields(logrus.Fields{
			"patient":   r.Id,
			"severity":  r.SeverityScore,
			"condition": r.Condition,
		}).Debug("Patient vitals updated")

		return r, nil
	}
}

// 患者の臨床情報を更新する。
// パッチで指定された自由記述フィールドのみをマージする。重症度の再計算は行わない。
func (s *PatientService) UpdateClinicalInfo(id int, patch *model.ClinicalInfoPatch) (*model.AdmittedPatient, error) {
	if patch == nil {
		return nil, C.NewBadRequestError(
			"invalid_clinical_payload",
			"Clinical info payload is required",
			map[string]interface{}{},
		)
	}

	now := time.Now()

	if r := s.Store.UpdateClinicalInfo(id, patch, now); r == nil {
		return nil, C.NewNotFoundError(
			"patient_not_found",
			fmt.Sprintf("Patient %d is not found", id),
			map[string]interface{}{},
		)
	} else {
		s.logger().WithFields(logrus.Fields{
			"patient": r.Id,
		}).Debug("Patient clinical info updated")

		return r, nil
	}
}

// ConditionLabel 容態ラベルの表示用文字列を取得する。
func (s *PatientService) ConditionLabel(condition C.Condition) string {
	if s.Localizer == nil {
		return string(condition)
	}

	return s.Localizer.LocalizeWithDefault(
		"condition_"+strings.ToLower(string(condition)),
		nil,
		string(condition),
	)
}

// パッチ内の全ての数値が有限であることを確認する。
func validateVitals(patch *model.VitalsPatch) error {
	vitals := map[string]*float64{
		"heartRate":   patch.HeartRate,
		"spo2":        patch.Spo2,
		"respRate":    patch.RespRate,
		"temperature": patch.Temperature,
		"bpSystolic":  patch.BpSystolic,
		"bpDiastolic": patch.BpDiastolic,
	}

	for name, v := range vitals {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return C.INVALID_VITAL(name, *v)
		}
	}

	return nil
}
