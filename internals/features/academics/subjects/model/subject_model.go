package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubjectModel struct {
	SubjectID          uuid.UUID `gorm:"type:uuid;primaryKey;column:subject_id" json:"subject_id"`
	SubjectName        string    `gorm:"size:120;not null;column:subject_name" json:"subject_name"`
	SubjectCode        string    `gorm:"size:64;not null;column:subject_code;uniqueIndex:uq_subjects_code" json:"subject_code"`
	SubjectDescription *string   `gorm:"type:text;column:subject_description" json:"subject_description,omitempty"`
	SubjectCreatedAt   time.Time `gorm:"column:subject_created_at;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt   time.Time `gorm:"column:subject_updated_at;autoUpdateTime" json:"subject_updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}

// ClassSubjectModel: mapel yang diambil sebuah kelas.
type ClassSubjectModel struct {
	ClassSubjectID        uuid.UUID `gorm:"type:uuid;primaryKey;column:class_subject_id" json:"class_subject_id"`
	ClassSubjectClassID   uuid.UUID `gorm:"type:uuid;not null;column:class_subject_class_id;uniqueIndex:uq_class_subjects_pair,priority:1" json:"class_subject_class_id"`
	ClassSubjectSubjectID uuid.UUID `gorm:"type:uuid;not null;column:class_subject_subject_id;uniqueIndex:uq_class_subjects_pair,priority:2;index:idx_class_subjects_subject" json:"class_subject_subject_id"`
	ClassSubjectCreatedAt time.Time `gorm:"column:class_subject_created_at;autoCreateTime" json:"class_subject_created_at"`
}

func (ClassSubjectModel) TableName() string { return "class_subjects" }

func (m *ClassSubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSubjectID == uuid.Nil {
		m.ClassSubjectID = uuid.New()
	}
	return nil
}
