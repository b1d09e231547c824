package model

import (
	"time"

	C "github.com/lifesevatra/doctor-server/constant"
)

// 血圧。収縮期・拡張期は個別に未計測となり得る。
type BloodPressure struct {
	Systolic  *float64 `json:"systolic"`
	Diastolic *float64 `json:"diastolic"`
}

// 入院患者記録。
// SeverityScoreとConditionは常にバイタルから導出された値であり、単独で更新されることはない。
type AdmittedPatient struct {
	Id                int           `json:"patient_id"`
	Name              string        `json:"patient_name"`
	Age               int           `json:"age"`
	Gender            string        `json:"gender"`
	BedId             string        `json:"bed_id"`
	AdmissionDate     string        `json:"admission_date"`
	HeartRate         *float64      `json:"heart_rate"`
	Spo2              *float64      `json:"spo2"`
	RespRate          *float64      `json:"resp_rate"`
	Temperature       *float64      `json:"temperature"`
	BloodPressure     BloodPressure `json:"blood_pressure"`
	MeasuredTime      time.Time     `json:"measured_time"`
	PresentingAilment *string       `json:"presenting_ailment"`
	MedicalHistory    *string       `json:"medical_history"`
	ClinicalNotes     *string       `json:"clinical_notes"`
	LabResults        *string       `json:"lab_results"`
	SeverityScore     int           `json:"severity_score"`
	Condition         C.Condition   `json:"condition"`
	Doctor            string        `json:"doctor"`
	CreatedAt         time.Time     `json:"created_at"`
	ModifiedAt        time.Time     `json:"updated_at"`
}

// Clone レコードの複製を作成する。ストアの外に記録を渡す際に利用する。
func (p *AdmittedPatient) Clone() *AdmittedPatient {
	c := *p

	c.HeartRate = cloneFloat(p.HeartRate)
	c.Spo2 = cloneFloat(p.Spo2)
	c.RespRate = cloneFloat(p.RespRate)
	c.Temperature = cloneFloat(p.Temperature)
	c.BloodPressure.Systolic = cloneFloat(p.BloodPressure.Systolic)
	c.BloodPressure.Diastolic = cloneFloat(p.BloodPressure.Diastolic)
	c.PresentingAilment = cloneString(p.PresentingAilment)
	c.MedicalHistory = cloneString(p.MedicalHistory)
	c.ClinicalNotes = cloneString(p.ClinicalNotes)
	c.LabResults = cloneString(p.LabResults)

	return &c
}

// 患者一覧の絞り込み条件。nilのフィールドは条件として扱われない。
type PatientFilter struct {
	Condition   *string
	MinSeverity *int
	MaxSeverity *int
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
