package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendance_backend/internals/constants"
	classService "attendance_backend/internals/features/academics/classes/service"
	userDTO "attendance_backend/internals/features/users/users/dto"
	userModel "attendance_backend/internals/features/users/users/model"
	"attendance_backend/internals/helpers/apperror"
)

// PlaceholderEmail: "042" → student042@college.edu. Email disimpan lower-case sedangkan
// roll case-sensitive, jadi roll dengan huruf besar diberi suffix hash supaya "AB1" dan
// "ab1" tidak berebut email yang sama.
func PlaceholderEmail(roll string) string {
	local := strings.ToLower(roll)
	if local != roll {
		local += "." + uuid.NewSHA1(uuid.NameSpaceOID, []byte(roll)).String()[:8]
	}
	return fmt.Sprintf("student%s@college.edu", local)
}

func PlaceholderName(roll string) string {
	return "Student " + roll
}

type SavedStudent struct {
	User    userModel.UserModel `json:"user"`
	ClassID uuid.UUID           `json:"class_id"`
}

func findStudentByRoll(ctx context.Context, db *gorm.DB, roll string) (*userModel.UserModel, error) {
	var u userModel.UserModel
	err := db.WithContext(ctx).
		Where("student_id = ? AND role = ?", roll, constants.RoleStudent).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// upsertStudent: cari by roll; kalau belum ada insert DO NOTHING lalu select ulang.
// name kosong → nama placeholder.
func upsertStudent(ctx context.Context, db *gorm.DB, roll, name string) (*userModel.UserModel, bool, error) {
	u, err := findStudentByRoll(ctx, db, roll)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperror.Query("find student by roll", err)
	}

	if name == "" {
		name = PlaceholderName(roll)
	}
	r := roll
	seed := &userModel.UserModel{
		Email:     PlaceholderEmail(roll),
		Name:      name,
		Password:  userModel.PlaceholderPasswordHash,
		Role:      constants.RoleStudent,
		StudentID: &r,
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(seed).Error; err != nil {
		return nil, false, apperror.Query("insert placeholder student", err)
	}

	u, err = findStudentByRoll(ctx, db, roll)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// insert di-skip tapi roll tidak ketemu → email placeholder dipakai akun lain
		return nil, false, apperror.Conflict("student",
			fmt.Sprintf("email %s sudah dipakai akun lain", seed.Email))
	}
	if err != nil {
		return nil, false, apperror.Query("reselect student", err)
	}
	return u, u.ID == seed.ID, nil
}

// GetOrCreateStudentByRollNumber idempoten: panggilan kedua dengan roll sama → user sama.
func GetOrCreateStudentByRollNumber(ctx context.Context, db *gorm.DB, roll string) (*userModel.UserModel, error) {
	roll = strings.TrimSpace(roll)
	if roll == "" {
		return nil, apperror.Input("rollNumber", "wajib diisi")
	}
	u, _, err := upsertStudent(ctx, db, roll, "")
	return u, err
}

// SaveStudents memproses entry berurutan, satu transaksi per entry.
// Berhenti di error pertama; entry sebelumnya tetap ter-commit.
func SaveStudents(ctx context.Context, db *gorm.DB, entries []userDTO.StudentEntry) ([]SavedStudent, error) {
	out := make([]SavedStudent, 0, len(entries))
	for i, e := range entries {
		roll := strings.TrimSpace(e.RollNumber)
		name := strings.TrimSpace(e.Name)
		className := strings.TrimSpace(e.Class)
		switch {
		case roll == "":
			return out, apperror.Input(fmt.Sprintf("entries[%d].rollNumber", i), "wajib diisi")
		case name == "":
			return out, apperror.Input(fmt.Sprintf("entries[%d].name", i), "wajib diisi")
		case className == "":
			return out, apperror.Input(fmt.Sprintf("entries[%d].class", i), "wajib diisi")
		}

		var saved SavedStudent
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			u, created, err := upsertStudent(ctx, tx, roll, name)
			if err != nil {
				return err
			}
			if !created && u.Name != name {
				if err := tx.Model(u).Update("name", name).Error; err != nil {
					return apperror.Query("update student name", err)
				}
			}

			class, err := classService.GetOrCreateClassByName(ctx, tx, className)
			if err != nil {
				return err
			}
			if _, err := classService.EnsureMembership(ctx, tx, u.ID, class.ClassID); err != nil {
				return err
			}

			saved = SavedStudent{User: *u, ClassID: class.ClassID}
			return nil
		})
		if err != nil {
			return out, err
		}
		out = append(out, saved)
	}
	return out, nil
}
