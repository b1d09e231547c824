package model

import (
	"time"

	C "github.com/lifesevatra/doctor-server/constant"
)

// 本日の予定の1枠。
type ScheduleSlot struct {
	Id          int              `json:"id"`
	Time        string           `json:"time"`
	PatientName string           `json:"patient_name"`
	Purpose     string           `json:"purpose"`
	Status      C.ScheduleStatus `json:"status"`
}

// 臨床メモ。IDと作成日時はストアにより採番される。
type ClinicalNote struct {
	Id          int       `json:"id"`
	PatientName string    `json:"patient_name"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// ログイン中の医師のプロフィール。
type DoctorInfo struct {
	Id             int    `json:"doctor_id"`
	FullName       string `json:"full_name"`
	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification"`
	Department     string `json:"department"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}
