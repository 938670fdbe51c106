package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hash yang sengaja tidak valid untuk bcrypt → akun placeholder tidak bisa login.
const PlaceholderPasswordHash = "!placeholder"

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"size:255;not null;uniqueIndex:uq_users_email_alive,where:deleted_at IS NULL" json:"email"`
	Name      string         `gorm:"size:120;not null" json:"name"`
	Password  string         `gorm:"not null" json:"-"`
	Role      string         `gorm:"type:varchar(16);not null;default:'student';index:idx_users_role" json:"role"`
	StudentID *string        `gorm:"size:64;uniqueIndex:uq_users_student_roll_alive,where:role = 'student' AND deleted_at IS NULL" json:"student_id,omitempty"`
	Phone     *string        `gorm:"size:32" json:"phone,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// IsPlaceholder: akun dibuat otomatis dari roll number, tidak bisa autentikasi.
func (u *UserModel) IsPlaceholder() bool {
	return u.Password == PlaceholderPasswordHash
}
