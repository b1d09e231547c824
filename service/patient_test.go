package service

import (
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	C "github.com/lifesevatra/doctor-server/constant"
	"github.com/lifesevatra/doctor-server/lib"
	"github.com/lifesevatra/doctor-server/model"
	"github.com/lifesevatra/doctor-server/resource/memstore"
)

func fv(v float64) *float64 {
	return &v
}

func sv(v string) *string {
	return &v
}

// テスト用の患者記録を作成する。バイタルは全て未計測。
func fixturePatient(id int, doctor string) *model.AdmittedPatient {
	at := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	return &model.AdmittedPatient{
		Id:            id,
		Name:          fmt.Sprintf("Patient %d", id),
		Age:           40,
		Gender:        "female",
		BedId:         fmt.Sprintf("W1-%02d", id),
		AdmissionDate: "2025-02-20",
		MeasuredTime:  at,
		SeverityScore: 3,
		Condition:     C.ConditionStable,
		Doctor:        doctor,
		CreatedAt:     at,
		ModifiedAt:    at,
	}
}

func TestServicePatient_ListByDoctor(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{
		fixturePatient(1, "Dr. X"),
		fixturePatient(2, "Dr. Y"),
		fixturePatient(3, "Dr. X"),
		fixturePatient(4, "dr. x"),
	})

	s := &PatientService{nil, store, nil}

	records, e := s.List("Dr. X")
	assert.NoError(t, e)

	// 大文字小文字を区別した完全一致のみ。登録順を保つ。
	assert.EqualValues(t, 2, len(records))
	assert.EqualValues(t, 1, records[0].Id)
	assert.EqualValues(t, 3, records[1].Id)

	records, e = s.List("Dr. Z")
	assert.NoError(t, e)
	assert.EqualValues(t, 0, len(records))
}

func TestServicePatient_ListFiltered(t *testing.T) {
	seed := []*model.AdmittedPatient{}

	// 重症度2,4,6,9の患者を用意する。
	for i, score := range []int{2, 4, 6, 9} {
		p := fixturePatient(i+1, "Dr. X")
		p.SeverityScore = score
		p.Condition = C.DeriveCondition(score)
		seed = append(seed, p)
	}

	other := fixturePatient(5, "Dr. Y")
	other.SeverityScore = 6
	other.Condition = C.ConditionSerious
	seed = append(seed, other)

	store := memstore.NewPatientStore(seed)
	s := &PatientService{nil, store, nil}

	minS := 4
	maxS := 8

	records, e := s.ListFiltered("Dr. X", model.PatientFilter{MinSeverity: &minS, MaxSeverity: &maxS})
	assert.NoError(t, e)

	assert.EqualValues(t, 2, len(records))
	assert.EqualValues(t, 4, records[0].SeverityScore)
	assert.EqualValues(t, 6, records[1].SeverityScore)

	// 容態は大文字小文字を区別しない完全一致。
	cond := "critical"
	records, e = s.ListFiltered("Dr. X", model.PatientFilter{Condition: &cond})
	assert.NoError(t, e)

	assert.EqualValues(t, 1, len(records))
	assert.EqualValues(t, 9, records[0].SeverityScore)

	// 条件なしの場合、担当患者全員。
	records, e = s.ListFiltered("Dr. X", model.PatientFilter{})
	assert.NoError(t, e)
	assert.EqualValues(t, 4, len(records))
}

func TestServicePatient_Fetch(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{
		fixturePatient(1, "Dr. X"),
	})

	s := &PatientService{nil, store, nil}

	r, e := s.Fetch(1)
	assert.NoError(t, e)
	assert.EqualValues(t, 1, r.Id)
	assert.Equal(t, "Patient 1", r.Name)

	// 存在しないIDの場合、ストアは変更されない。
	r, e = s.Fetch(99)
	assert.Nil(t, r)
	assert.IsType(t, &C.NotFoundError{}, e)

	records, _ := s.List("Dr. X")
	assert.EqualValues(t, 1, len(records))
}

func TestServicePatient_UpdateVitals(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{
		fixturePatient(1, "Dr. X"),
	})

	s := &PatientService{nil, store, nil}

	// バイタル未計測の場合、基礎点3で安定。
	r, e := s.Fetch(1)
	assert.NoError(t, e)
	assert.EqualValues(t, 3, r.SeverityScore)
	assert.Equal(t, C.ConditionStable, r.Condition)

	// SpO2のみ更新。3+3=6で重症。
	r, e = s.UpdateVitals(1, &model.VitalsPatch{Spo2: fv(85)})
	assert.NoError(t, e)
	assert.EqualValues(t, 6, r.SeverityScore)
	assert.Equal(t, C.ConditionSerious, r.Condition)

	// 呼吸数を追加。既存のSpO2と合わせて3+3+2=8で重篤。
	r, e = s.UpdateVitals(1, &model.VitalsPatch{RespRate: fv(30)})
	assert.NoError(t, e)
	assert.EqualValues(t, 8, r.SeverityScore)
	assert.Equal(t, C.ConditionCritical, r.Condition)

	// 未指定のフィールドは保持される。
	assert.NotNil(t, r.Spo2)
	assert.EqualValues(t, 85, *r.Spo2)
	assert.Nil(t, r.HeartRate)
}

func TestServicePatient_UpdateVitalsPartialMerge(t *testing.T) {
	p := fixturePatient(1, "Dr. X")
	p.Spo2 = fv(88)
	p.SeverityScore = 6
	p.Condition = C.ConditionSerious

	store := memstore.NewPatientStore([]*model.AdmittedPatient{p})
	s := &PatientService{nil, store, nil}

	// 新しい心拍(+2)と既存のSpO2(+3)の両方が反映される。
	r, e := s.UpdateVitals(1, &model.VitalsPatch{HeartRate: fv(130)})
	assert.NoError(t, e)

	assert.EqualValues(t, 8, r.SeverityScore)
	assert.Equal(t, C.ConditionCritical, r.Condition)
}

func TestServicePatient_UpdateVitalsBloodPressure(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{
		fixturePatient(1, "Dr. X"),
	})

	s := &PatientService{nil, store, nil}

	// 収縮期のみ更新。拡張期は未計測のまま。
	r, e := s.UpdateVitals(1, &model.VitalsPatch{BpSystolic: fv(185)})
	assert.NoError(t, e)

	assert.NotNil(t, r.BloodPressure.Systolic)
	assert.Nil(t, r.BloodPressure.Diastolic)
	assert.EqualValues(t, 5, r.SeverityScore)

	// 拡張期を後から個別に更新できる。
	r, e = s.UpdateVitals(1, &model.VitalsPatch{BpDiastolic: fv(115)})
	assert.NoError(t, e)

	assert.EqualValues(t, 185, *r.BloodPressure.Systolic)
	assert.EqualValues(t, 115, *r.BloodPressure.Diastolic)
	assert.EqualValues(t, 6, r.SeverityScore)
}

func TestServicePatient_UpdateVitalsZeroAsAbsent(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{
		fixturePatient(1, "Dr. X"),
	})

	s := &PatientService{nil, store, nil}

	// 0は未計測として扱われ、下限割れとして加算されない。
	r, e := s.UpdateVitals(1, &model.VitalsPatch{HeartRate: fv(0)})
	assert.NoError(t, e)

	assert.EqualValues(t, 3, r.SeverityScore)
	assert.Equal(t, C.ConditionStable, r.Condition)
}

func TestServicePatient_UpdateVitalsIdempotent(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{
		fixturePatient(1, "Dr. X"),
	})

	s := &PatientService{nil, store, nil}

	patch := &model.VitalsPatch{HeartRate: fv(130), Spo2: fv(92)}

	first, e := s.UpdateVitals(1, patch)
	assert.NoError(t, e)

	second, e := s.UpdateVitals(1, patch)
	assert.NoError(t, e)

	assert.EqualValues(t, first.SeverityScore, second.SeverityScore)
	assert.Equal(t, first.Condition, second.Condition)
	assert.EqualValues(t, 6, second.SeverityScore)
}

func TestServicePatient_UpdateVitalsValidation(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{
		fixturePatient(1, "Dr. X"),
	})

	s := &PatientService{nil, store, nil}

	// NaN/Infはマージ前に拒否される。
	r, e := s.UpdateVitals(1, &model.VitalsPatch{HeartRate: fv(math.NaN())})
	assert.Nil(t, r)
	assert.IsType(t, &C.BadRequestError{}, e)

	r, e = s.UpdateVitals(1, &model.VitalsPatch{Temperature: fv(math.Inf(1))})
	assert.Nil(t, r)
	assert.IsType(t, &C.BadRequestError{}, e)

	r, e = s.UpdateVitals(1, nil)
	assert.Nil(t, r)
	assert.IsType(t, &C.BadRequestError{}, e)

	// 拒否された更新は記録に影響しない。
	current, _ := s.Fetch(1)
	assert.Nil(t, current.HeartRate)
	assert.Nil(t, current.Temperature)
	assert.EqualValues(t, 3, current.SeverityScore)

	// 存在しない患者。
	r, e = s.UpdateVitals(99, &model.VitalsPatch{HeartRate: fv(80)})
	assert.Nil(t, r)
	assert.IsType(t, &C.NotFoundError{}, e)
}

func TestServicePatient_UpdateVitalsTimestamps(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{
		fixturePatient(1, "Dr. X"),
	})

	s := &PatientService{nil, store, nil}

	before, _ := s.Fetch(1)

	r, e := s.UpdateVitals(1, &model.VitalsPatch{HeartRate: fv(80)})
	assert.NoError(t, e)

	// measured_timeとupdated_atは更新され、created_atは不変。
	assert.True(t, r.MeasuredTime.After(before.MeasuredTime))
	assert.True(t, r.ModifiedAt.After(before.ModifiedAt))
	assert.Equal(t, before.CreatedAt, r.CreatedAt)
}

func TestServicePatient_UpdateClinicalInfo(t *testing.T) {
	p := fixturePatient(1, "Dr. X")
	p.Spo2 = fv(88)
	p.SeverityScore = 6
	p.Condition = C.ConditionSerious
	p.MedicalHistory = sv("diabetes")
	p.LabResults = sv("pending")

	store := memstore.NewPatientStore([]*model.AdmittedPatient{p})
	s := &PatientService{nil, store, nil}

	before, _ := s.Fetch(1)

	r, e := s.UpdateClinicalInfo(1, &model.ClinicalInfoPatch{
		PresentingAilment: model.Text("pneumonia"),
		LabResults:        model.NullText(),
	})
	assert.NoError(t, e)

	// 指定されたフィールドのみマージされ、nullはクリアを表す。
	assert.Equal(t, "pneumonia", *r.PresentingAilment)
	assert.Nil(t, r.LabResults)
	assert.Equal(t, "diabetes", *r.MedicalHistory)

	// 重症度は再計算されず、計測日時も変わらない。
	assert.EqualValues(t, 6, r.SeverityScore)
	assert.Equal(t, C.ConditionSerious, r.Condition)
	assert.Equal(t, before.MeasuredTime, r.MeasuredTime)
	assert.True(t, r.ModifiedAt.After(before.ModifiedAt))

	// 存在しない患者。
	r, e = s.UpdateClinicalInfo(99, &model.ClinicalInfoPatch{})
	assert.Nil(t, r)
	assert.IsType(t, &C.NotFoundError{}, e)
}

func TestServicePatient_SnapshotIsolation(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{
		fixturePatient(1, "Dr. X"),
	})

	s := &PatientService{nil, store, nil}

	r, _ := s.Fetch(1)

	// 取得した記録を書き換えてもストアには影響しない。
	r.Name = "tampered"
	r.SeverityScore = 10
	r.HeartRate = fv(200)

	current, _ := s.Fetch(1)
	assert.Equal(t, "Patient 1", current.Name)
	assert.EqualValues(t, 3, current.SeverityScore)
	assert.Nil(t, current.HeartRate)
}

func TestServicePatient_ConcurrentUpdates(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{
		fixturePatient(1, "Dr. X"),
		fixturePatient(2, "Dr. X"),
	})

	s := &PatientService{nil, store, nil}

	iterations := 100

	var wg sync.WaitGroup
	wg.Add(4)

	// 同一患者への並行更新。フィールド単位のマージが失われないこと。
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_, e := s.UpdateVitals(1, &model.VitalsPatch{HeartRate: fv(130)})
			assert.NoError(t, e)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_, e := s.UpdateVitals(1, &model.VitalsPatch{Spo2: fv(88)})
			assert.NoError(t, e)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_, e := s.UpdateClinicalInfo(1, &model.ClinicalInfoPatch{
				PresentingAilment: model.Text("pneumonia"),
			})
			assert.NoError(t, e)
		}
	}()

	// 別患者への更新は独立して進行する。
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_, e := s.UpdateVitals(2, &model.VitalsPatch{Temperature: fv(39.5)})
			assert.NoError(t, e)
		}
	}()

	wg.Wait()

	r, e := s.Fetch(1)
	assert.NoError(t, e)

	assert.EqualValues(t, 130, *r.HeartRate)
	assert.EqualValues(t, 88, *r.Spo2)
	assert.Equal(t, "pneumonia", *r.PresentingAilment)
	assert.EqualValues(t, 8, r.SeverityScore)
	assert.Equal(t, C.ConditionCritical, r.Condition)

	other, e := s.Fetch(2)
	assert.NoError(t, e)
	assert.EqualValues(t, 4, other.SeverityScore)
}

func TestServicePatient_ConditionLabel(t *testing.T) {
	store := memstore.NewPatientStore([]*model.AdmittedPatient{})

	s := &PatientService{nil, store, lib.NewLocalizer("en")}

	assert.Equal(t, "Critical", s.ConditionLabel(C.ConditionCritical))
	assert.Equal(t, "Recovering", s.ConditionLabel(C.ConditionRecovering))

	s = &PatientService{nil, store, lib.NewLocalizer("ja")}

	assert.Equal(t, "重篤", s.ConditionLabel(C.ConditionCritical))
	assert.Equal(t, "安定", s.ConditionLabel(C.ConditionStable))

	// ローカライザーなしの場合、ラベルをそのまま返す。
	s = &PatientService{nil, store, nil}

	assert.Equal(t, "Serious", s.ConditionLabel(C.ConditionSerious))
}
