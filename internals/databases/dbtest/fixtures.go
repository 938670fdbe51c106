package dbtest

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "attendance_backend/internals/features/academics/classes/model"
	subjectModel "attendance_backend/internals/features/academics/subjects/model"
	userModel "attendance_backend/internals/features/users/users/model"
)

// User membuat user aktif. roll kosong → tanpa student_id.
func User(t *testing.T, db *gorm.DB, name, role, roll string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		ID:       uuid.New(),
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "." + uuid.NewString()[:8] + "@test.local",
		Name:     name,
		Password: "$2a$10$fixturefixturefixturefixturefixturefixturefixtureabc",
		Role:     role,
	}
	if roll != "" {
		r := roll
		u.StudentID = &r
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func Class(t *testing.T, db *gorm.DB, name, code string) *classModel.ClassModel {
	t.Helper()
	m := &classModel.ClassModel{ClassName: name, ClassCode: code}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create class %s: %v", name, err)
	}
	return m
}

func Subject(t *testing.T, db *gorm.DB, name, code string) *subjectModel.SubjectModel {
	t.Helper()
	m := &subjectModel.SubjectModel{SubjectName: name, SubjectCode: code}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create subject %s: %v", name, err)
	}
	return m
}

// Member menambahkan user ke kelas (isCR opsional).
func Member(t *testing.T, db *gorm.DB, userID, classID uuid.UUID, isCR bool) {
	t.Helper()
	m := &classModel.UserClassModel{UserClassUserID: userID, UserClassClassID: classID, UserClassIsCR: isCR}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}
}
