package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"attendance_backend/internals/features/attendance/records/model"
)

/* ===============================
   Read view (join records + users + classes + subjects)
=================================*/

// AttendanceRecordView: target Scan query list. Date dikirim sebagai YYYY-MM-DD.
type AttendanceRecordView struct {
	AttendanceRecordID        uuid.UUID      `json:"attendance_record_id" gorm:"column:attendance_record_id"`
	AttendanceRecordStudentID uuid.UUID      `json:"attendance_record_student_id" gorm:"column:attendance_record_student_id"`
	AttendanceRecordClassID   uuid.UUID      `json:"attendance_record_class_id" gorm:"column:attendance_record_class_id"`
	AttendanceRecordSubjectID uuid.UUID      `json:"attendance_record_subject_id" gorm:"column:attendance_record_subject_id"`
	AttendanceRecordDateRaw   datatypes.Date `json:"-" gorm:"column:attendance_record_date"`
	AttendanceRecordDate      string         `json:"attendance_record_date" gorm:"-"`
	AttendanceRecordStatus    string         `json:"attendance_record_status" gorm:"column:attendance_record_status"`
	AttendanceRecordNotes     *string        `json:"attendance_record_notes,omitempty" gorm:"column:attendance_record_notes"`
	AttendanceRecordMarkedBy  uuid.UUID      `json:"attendance_record_marked_by" gorm:"column:attendance_record_marked_by"`
	AttendanceRecordCreatedAt time.Time      `json:"attendance_record_created_at" gorm:"column:attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time      `json:"attendance_record_updated_at" gorm:"column:attendance_record_updated_at"`

	StudentName       string  `json:"student_name" gorm:"column:student_name"`
	StudentRollNumber *string `json:"student_roll_number,omitempty" gorm:"column:student_roll_number"`
	ClassName         string  `json:"class_name" gorm:"column:class_name"`
	SubjectName       string  `json:"subject_name" gorm:"column:subject_name"`
}

// Record: bentuk ringkas untuk response mark.
type Record struct {
	AttendanceRecordID        uuid.UUID `json:"attendance_record_id"`
	AttendanceRecordStudentID uuid.UUID `json:"attendance_record_student_id"`
	AttendanceRecordClassID   uuid.UUID `json:"attendance_record_class_id"`
	AttendanceRecordSubjectID uuid.UUID `json:"attendance_record_subject_id"`
	AttendanceRecordDate      string    `json:"attendance_record_date"`
	AttendanceRecordStatus    string    `json:"attendance_record_status"`
	AttendanceRecordNotes     *string   `json:"attendance_record_notes,omitempty"`
	AttendanceRecordMarkedBy  uuid.UUID `json:"attendance_record_marked_by"`
	AttendanceRecordCreatedAt time.Time `json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time `json:"attendance_record_updated_at"`
}

func FromModel(m *model.AttendanceRecordModel) *Record {
	if m == nil {
		return nil
	}
	return &Record{
		AttendanceRecordID:        m.AttendanceRecordID,
		AttendanceRecordStudentID: m.AttendanceRecordStudentID,
		AttendanceRecordClassID:   m.AttendanceRecordClassID,
		AttendanceRecordSubjectID: m.AttendanceRecordSubjectID,
		AttendanceRecordDate:      FormatDate(m.AttendanceRecordDate),
		AttendanceRecordStatus:    string(m.AttendanceRecordStatus),
		AttendanceRecordNotes:     m.AttendanceRecordNotes,
		AttendanceRecordMarkedBy:  m.AttendanceRecordMarkedBy,
		AttendanceRecordCreatedAt: m.AttendanceRecordCreatedAt,
		AttendanceRecordUpdatedAt: m.AttendanceRecordUpdatedAt,
	}
}

/* ===============================
   Requests
=================================*/

// POST /api/attendance/mark
type MarkAttendanceRequest struct {
	StudentID string  `json:"studentId" validate:"required,uuid"`
	ClassID   string  `json:"classId" validate:"required,uuid"`
	SubjectID string  `json:"subjectId" validate:"required,uuid"`
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string  `json:"status" validate:"required"`
	Notes     *string `json:"notes" validate:"omitempty,max=1000"`
}

// BulkMarkItem: student via studentId atau rollNumber; class/subject kosong → default.
type BulkMarkItem struct {
	StudentID  string  `json:"studentId"`
	RollNumber string  `json:"rollNumber"`
	ClassID    string  `json:"classId"`
	SubjectID  string  `json:"subjectId"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
}

// POST /api/attendance/mark/bulk
type BulkMarkRequest struct {
	AttendanceRecords []BulkMarkItem `json:"attendanceRecords" validate:"required,min=1,max=1000"`
}

/* ===============================
   Results
=================================*/

// BulkMarkResult: satu per item, urutan = urutan input.
type BulkMarkResult struct {
	Index     int     `json:"index"`
	Success   bool    `json:"success"`
	Record    *Record `json:"record,omitempty"`
	Error     string  `json:"error,omitempty"`
	ErrorCode string  `json:"error_code,omitempty"`
}

type BulkMarkSummary struct {
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Results   []BulkMarkResult `json:"results"`
}

func Summarize(results []BulkMarkResult) BulkMarkSummary {
	s := BulkMarkSummary{Total: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// Stats: attendancePercentage = present/total; effective = (present+official)/total.
type Stats struct {
	TotalRecords                  int64   `json:"totalRecords"`
	PresentCount                  int64   `json:"presentCount"`
	AbsentCount                   int64   `json:"absentCount"`
	LateCount                     int64   `json:"lateCount"`
	OfficialCount                 int64   `json:"officialCount"`
	AttendancePercentage          float64 `json:"attendancePercentage"`
	EffectiveAttendancePercentage float64 `json:"effectiveAttendancePercentage"`
}

type StudentSummary struct {
	StudentID       uuid.UUID  `json:"studentId"`
	ClassID         *uuid.UUID `json:"classId,omitempty"`
	Days            int        `json:"days"`
	StartDate       string     `json:"startDate"`
	EndDate         string     `json:"endDate"`
	AttendedClasses int64      `json:"attendedClasses"`
	Stats
}
