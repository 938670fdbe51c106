package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	classModel "attendance_backend/internals/features/academics/classes/model"
	subjectModel "attendance_backend/internals/features/academics/subjects/model"
	userModel "attendance_backend/internals/features/users/users/model"
	"attendance_backend/internals/helpers/apperror"
)

type AttendanceStatus string

const (
	AttendancePresent  AttendanceStatus = "present"
	AttendanceAbsent   AttendanceStatus = "absent"
	AttendanceLate     AttendanceStatus = "late"
	AttendanceOfficial AttendanceStatus = "official" // izin resmi
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceOfficial:
		return true
	default:
		return false
	}
}

// ParseStatus: trim + lower-case lalu cek enum.
func ParseStatus(raw string) (AttendanceStatus, error) {
	s := AttendanceStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", apperror.Status(raw)
	}
	return s, nil
}

// Natural key (student, class, subject, date) dijaga unique index di DB.
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordStudentID uuid.UUID      `gorm:"type:uuid;not null;column:attendance_record_student_id;uniqueIndex:uq_attendance_natural_key,priority:1" json:"attendance_record_student_id"`
	AttendanceRecordClassID   uuid.UUID      `gorm:"type:uuid;not null;column:attendance_record_class_id;uniqueIndex:uq_attendance_natural_key,priority:2;index:idx_attendance_class_subject,priority:1" json:"attendance_record_class_id"`
	AttendanceRecordSubjectID uuid.UUID      `gorm:"type:uuid;not null;column:attendance_record_subject_id;uniqueIndex:uq_attendance_natural_key,priority:3;index:idx_attendance_class_subject,priority:2" json:"attendance_record_subject_id"`
	AttendanceRecordDate      datatypes.Date `gorm:"not null;column:attendance_record_date;uniqueIndex:uq_attendance_natural_key,priority:4;index:idx_attendance_date" json:"attendance_record_date"`

	AttendanceRecordStatus   AttendanceStatus `gorm:"type:varchar(16);not null;column:attendance_record_status;index:idx_attendance_status" json:"attendance_record_status"`
	AttendanceRecordNotes    *string          `gorm:"type:text;column:attendance_record_notes" json:"attendance_record_notes,omitempty"`
	AttendanceRecordMarkedBy uuid.UUID        `gorm:"type:uuid;not null;column:attendance_record_marked_by" json:"attendance_record_marked_by"`

	AttendanceRecordCreatedAt time.Time `gorm:"column:attendance_record_created_at;not null" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time `gorm:"column:attendance_record_updated_at;not null" json:"attendance_record_updated_at"`

	// relasi hanya untuk FK constraint saat migrate
	Student *userModel.UserModel       `gorm:"foreignKey:AttendanceRecordStudentID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	Class   *classModel.ClassModel     `gorm:"foreignKey:AttendanceRecordClassID;references:ClassID;constraint:OnDelete:RESTRICT" json:"-"`
	Subject *subjectModel.SubjectModel `gorm:"foreignKey:AttendanceRecordSubjectID;references:SubjectID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

func (m *AttendanceRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceRecordID == uuid.Nil {
		m.AttendanceRecordID = uuid.New()
	}
	return nil
}
