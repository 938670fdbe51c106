package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kode placeholder untuk kelas/mapel default.
const DefaultCode = "DEFAULT"

type ClassModel struct {
	ClassID          uuid.UUID `gorm:"type:uuid;primaryKey;column:class_id" json:"class_id"`
	ClassName        string    `gorm:"size:120;not null;column:class_name;index:idx_classes_name" json:"class_name"`
	ClassCode        string    `gorm:"size:64;not null;column:class_code;uniqueIndex:uq_classes_code" json:"class_code"`
	ClassDescription *string   `gorm:"type:text;column:class_description" json:"class_description,omitempty"`
	ClassCreatedAt   time.Time `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt   time.Time `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}

// UserClassModel: keanggotaan user di kelas. is_cr menandai class representative.
type UserClassModel struct {
	UserClassID        uuid.UUID `gorm:"type:uuid;primaryKey;column:user_class_id" json:"user_class_id"`
	UserClassUserID    uuid.UUID `gorm:"type:uuid;not null;column:user_class_user_id;uniqueIndex:uq_user_classes_user_class,priority:1" json:"user_class_user_id"`
	UserClassClassID   uuid.UUID `gorm:"type:uuid;not null;column:user_class_class_id;uniqueIndex:uq_user_classes_user_class,priority:2;index:idx_user_classes_class" json:"user_class_class_id"`
	UserClassIsCR      bool      `gorm:"not null;default:false;column:user_class_is_cr" json:"user_class_is_cr"`
	UserClassCreatedAt time.Time `gorm:"column:user_class_created_at;autoCreateTime" json:"user_class_created_at"`
}

func (UserClassModel) TableName() string { return "user_classes" }

func (m *UserClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserClassID == uuid.Nil {
		m.UserClassID = uuid.New()
	}
	return nil
}
