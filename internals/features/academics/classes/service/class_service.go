package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classModel "attendance_backend/internals/features/academics/classes/model"
	"attendance_backend/internals/helpers/apperror"
)

const importedClassDescription = "Class created from student import"

// ClassCodeFromName: "CSE A" → "CSEA". Dipakai saat kelas dibuat lazy dari import.
func ClassCodeFromName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), ""))
}

type ClassWithCount struct {
	classModel.ClassModel
	StudentCount int64 `json:"student_count" gorm:"column:student_count"`
}

type ClassStudent struct {
	ID        uuid.UUID `json:"id" gorm:"column:id"`
	Name      string    `json:"name" gorm:"column:name"`
	Email     string    `json:"email" gorm:"column:email"`
	StudentID *string   `json:"student_id,omitempty" gorm:"column:student_id"`
	Phone     *string   `json:"phone,omitempty" gorm:"column:phone"`
	IsCR      bool      `json:"is_cr" gorm:"column:is_cr"`
}

func ListClasses(ctx context.Context, db *gorm.DB) ([]ClassWithCount, error) {
	var rows []ClassWithCount
	err := db.WithContext(ctx).
		Table("classes AS c").
		Select("c.*, COUNT(uc.user_class_user_id) AS student_count").
		Joins("LEFT JOIN user_classes uc ON uc.user_class_class_id = c.class_id").
		Group("c.class_id").
		Order("c.class_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Query("list classes", err)
	}
	return rows, nil
}

func FindClass(ctx context.Context, db *gorm.DB, classID uuid.UUID) (*classModel.ClassModel, error) {
	var m classModel.ClassModel
	err := db.WithContext(ctx).Where("class_id = ?", classID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("class", classID.String())
	}
	if err != nil {
		return nil, apperror.Query("find class", err)
	}
	return &m, nil
}

func CreateClass(ctx context.Context, db *gorm.DB, name, code string, desc *string) (*classModel.ClassModel, error) {
	m := &classModel.ClassModel{
		ClassName:        strings.TrimSpace(name),
		ClassCode:        strings.ToUpper(strings.TrimSpace(code)),
		ClassDescription: desc,
	}
	if m.ClassCode == "" {
		m.ClassCode = ClassCodeFromName(m.ClassName)
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, apperror.Query("create class", err)
	}
	return m, nil
}

// maxClassCodeAttempts: batas suffix kode ("CSEA", "CSEA2", ...) saat kode turunan
// sudah dipakai kelas lain.
const maxClassCodeAttempts = 20

// GetOrCreateClassByName: cari by nama; kalau tidak ada, insert ON CONFLICT DO NOTHING
// (kode diturunkan dari nama) lalu select ulang by kode. Kode yang sudah milik kelas
// bernama lain dilewati dengan suffix angka.
func GetOrCreateClassByName(ctx context.Context, db *gorm.DB, name string) (*classModel.ClassModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Input("class", "nama kelas wajib diisi")
	}

	var m classModel.ClassModel
	err := db.WithContext(ctx).Where("class_name = ?", name).Order("class_created_at ASC").First(&m).Error
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Query("find class by name", err)
	}

	base := ClassCodeFromName(name)
	desc := importedClassDescription
	for i := 1; i <= maxClassCodeAttempts; i++ {
		code := base
		if i > 1 {
			code = base + strconv.Itoa(i)
		}
		got, err := getOrCreateClassByCode(ctx, db, &classModel.ClassModel{
			ClassName:        name,
			ClassCode:        code,
			ClassDescription: &desc,
		})
		if err != nil {
			return nil, err
		}
		if got.ClassName == name {
			return got, nil
		}
	}
	return nil, apperror.Conflict("class", fmt.Sprintf("kode %s sudah dipakai kelas lain", base))
}

func getOrCreateClassByCode(ctx context.Context, db *gorm.DB, seed *classModel.ClassModel) (*classModel.ClassModel, error) {
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(seed).Error; err != nil {
		return nil, apperror.Query("insert class", err)
	}

	var out classModel.ClassModel
	if err := db.WithContext(ctx).Where("class_code = ?", seed.ClassCode).First(&out).Error; err != nil {
		return nil, apperror.Query("reselect class", err)
	}
	return &out, nil
}

// EnsureMembership: (user, class) tidak pernah dobel. Baris existing tidak diubah.
func EnsureMembership(ctx context.Context, db *gorm.DB, userID, classID uuid.UUID) (*classModel.UserClassModel, error) {
	seed := &classModel.UserClassModel{
		UserClassUserID:  userID,
		UserClassClassID: classID,
		UserClassIsCR:    false,
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(seed).Error; err != nil {
		return nil, apperror.Query("insert membership", err)
	}

	var out classModel.UserClassModel
	if err := db.WithContext(ctx).
		Where("user_class_user_id = ? AND user_class_class_id = ?", userID, classID).
		First(&out).Error; err != nil {
		return nil, apperror.Query("reselect membership", err)
	}
	return &out, nil
}

// SetClassRepresentative: upsert membership dengan flag is_cr.
func SetClassRepresentative(ctx context.Context, db *gorm.DB, classID, userID uuid.UUID, isCR bool) (*classModel.UserClassModel, error) {
	if _, err := FindClass(ctx, db, classID); err != nil {
		return nil, err
	}

	seed := &classModel.UserClassModel{
		UserClassUserID:  userID,
		UserClassClassID: classID,
		UserClassIsCR:    isCR,
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_class_user_id"}, {Name: "user_class_class_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"user_class_is_cr": isCR}),
		}).
		Create(seed).Error; err != nil {
		return nil, apperror.Query("upsert class representative", err)
	}

	var out classModel.UserClassModel
	if err := db.WithContext(ctx).
		Where("user_class_user_id = ? AND user_class_class_id = ?", userID, classID).
		First(&out).Error; err != nil {
		return nil, apperror.Query("reselect membership", err)
	}
	return &out, nil
}

func IsClassRepresentative(ctx context.Context, db *gorm.DB, userID, classID uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&classModel.UserClassModel{}).
		Where("user_class_user_id = ? AND user_class_class_id = ? AND user_class_is_cr = ?", userID, classID, true).
		Count(&n).Error
	if err != nil {
		return false, apperror.Query("check class representative", err)
	}
	return n > 0, nil
}

// StudentsByClass: siswa & CR aktif di kelas, urut nama. NotFound kalau kelas tidak ada.
func StudentsByClass(ctx context.Context, db *gorm.DB, classID uuid.UUID) ([]ClassStudent, error) {
	if _, err := FindClass(ctx, db, classID); err != nil {
		return nil, err
	}

	rows := make([]ClassStudent, 0)
	err := db.WithContext(ctx).
		Table("users AS u").
		Select("u.id, u.name, u.email, u.student_id, u.phone, uc.user_class_is_cr AS is_cr").
		Joins("JOIN user_classes uc ON uc.user_class_user_id = u.id").
		Where("uc.user_class_class_id = ?", classID).
		Where("u.role IN ?", []string{"student", "cr"}).
		Where("u.deleted_at IS NULL").
		Order("u.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Query("list class students", err)
	}
	return rows, nil
}
