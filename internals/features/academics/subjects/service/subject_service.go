package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classService "attendance_backend/internals/features/academics/classes/service"
	subjectModel "attendance_backend/internals/features/academics/subjects/model"
	"attendance_backend/internals/helpers/apperror"
)

type SubjectWithCount struct {
	subjectModel.SubjectModel
	ClassCount int64 `json:"class_count" gorm:"column:class_count"`
}

func ListSubjects(ctx context.Context, db *gorm.DB) ([]SubjectWithCount, error) {
	var rows []SubjectWithCount
	err := db.WithContext(ctx).
		Table("subjects AS s").
		Select("s.*, COUNT(cs.class_subject_class_id) AS class_count").
		Joins("LEFT JOIN class_subjects cs ON cs.class_subject_subject_id = s.subject_id").
		Group("s.subject_id").
		Order("s.subject_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Query("list subjects", err)
	}
	return rows, nil
}

func FindSubject(ctx context.Context, db *gorm.DB, subjectID uuid.UUID) (*subjectModel.SubjectModel, error) {
	var m subjectModel.SubjectModel
	err := db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("subject", subjectID.String())
	}
	if err != nil {
		return nil, apperror.Query("find subject", err)
	}
	return &m, nil
}

func CreateSubject(ctx context.Context, db *gorm.DB, name, code string, desc *string) (*subjectModel.SubjectModel, error) {
	m := &subjectModel.SubjectModel{
		SubjectName:        strings.TrimSpace(name),
		SubjectCode:        strings.ToUpper(strings.TrimSpace(code)),
		SubjectDescription: desc,
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, apperror.Query("create subject", err)
	}
	return m, nil
}

// AttachSubject: idempoten, pasangan (class, subject) tidak pernah dobel.
func AttachSubject(ctx context.Context, db *gorm.DB, classID, subjectID uuid.UUID) (*subjectModel.ClassSubjectModel, error) {
	if _, err := classService.FindClass(ctx, db, classID); err != nil {
		return nil, err
	}
	if _, err := FindSubject(ctx, db, subjectID); err != nil {
		return nil, err
	}

	seed := &subjectModel.ClassSubjectModel{
		ClassSubjectClassID:   classID,
		ClassSubjectSubjectID: subjectID,
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(seed).Error; err != nil {
		return nil, apperror.Query("attach subject", err)
	}

	var out subjectModel.ClassSubjectModel
	if err := db.WithContext(ctx).
		Where("class_subject_class_id = ? AND class_subject_subject_id = ?", classID, subjectID).
		First(&out).Error; err != nil {
		return nil, apperror.Query("reselect class subject", err)
	}
	return &out, nil
}
