package service

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classModel "attendance_backend/internals/features/academics/classes/model"
	subjectModel "attendance_backend/internals/features/academics/subjects/model"
	"attendance_backend/internals/helpers/apperror"
)

const (
	defaultClassName          = "Default Class"
	defaultClassDescription   = "Default class for attendance"
	defaultSubjectName        = "Default Subject"
	defaultSubjectDescription = "Default subject for attendance"
)

// Defaults: kelas & mapel placeholder untuk absensi yang tidak menyebut kelas/mapel.
type Defaults struct {
	Class   classModel.ClassModel     `json:"class"`
	Subject subjectModel.SubjectModel `json:"subject"`
}

// EnsureDefaults idempoten; aman dipanggil paralel (unique code + DO NOTHING).
func EnsureDefaults(ctx context.Context, db *gorm.DB) (Defaults, error) {
	var out Defaults

	cdesc := defaultClassDescription
	class, err := getOrCreateClassByCode(ctx, db, &classModel.ClassModel{
		ClassName:        defaultClassName,
		ClassCode:        classModel.DefaultCode,
		ClassDescription: &cdesc,
	})
	if err != nil {
		return out, err
	}
	out.Class = *class

	sdesc := defaultSubjectDescription
	seed := &subjectModel.SubjectModel{
		SubjectName:        defaultSubjectName,
		SubjectCode:        classModel.DefaultCode,
		SubjectDescription: &sdesc,
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(seed).Error; err != nil {
		return out, apperror.Query("insert default subject", err)
	}
	if err := db.WithContext(ctx).
		Where("subject_code = ?", classModel.DefaultCode).
		First(&out.Subject).Error; err != nil {
		return out, apperror.Query("reselect default subject", err)
	}
	return out, nil
}
