package service

import (
	"context"

	"gorm.io/gorm"

	"attendance_backend/internals/features/attendance/records/dto"
	"attendance_backend/internals/helpers/apperror"
)

// Shape: kombinasi predikat yang dipakai untuk satu Filter.
type Shape int

const (
	ShapeAll Shape = iota
	ShapeStudent
	ShapeClassSubject
	ShapeClassSubjectDate
	ShapeClassSubjectDateStudent
	ShapeRange
)

func (s Shape) String() string {
	switch s {
	case ShapeRange:
		return "range"
	case ShapeClassSubjectDateStudent:
		return "class_subject_date_student"
	case ShapeClassSubjectDate:
		return "class_subject_date"
	case ShapeClassSubject:
		return "class_subject"
	case ShapeStudent:
		return "student"
	default:
		return "all"
	}
}

const listOrder = "ar.attendance_record_date DESC, u.name ASC, ar.attendance_record_id ASC"

const viewColumns = `ar.attendance_record_id,
	ar.attendance_record_student_id,
	ar.attendance_record_class_id,
	ar.attendance_record_subject_id,
	ar.attendance_record_date,
	ar.attendance_record_status,
	ar.attendance_record_notes,
	ar.attendance_record_marked_by,
	ar.attendance_record_created_at,
	ar.attendance_record_updated_at,
	u.name AS student_name,
	u.student_id AS student_roll_number,
	c.class_name AS class_name,
	s.subject_name AS subject_name`

// SelectShape memilih kombinasi paling spesifik (first match wins).
// Kombinasi di luar daftar ditolak, filter yang dikirim tidak pernah diabaikan.
func SelectShape(f dto.Filter) (Shape, error) {
	hasClass := f.ClassID != nil
	hasSubject := f.SubjectID != nil
	hasStudent := f.StudentID != nil
	hasDate := f.Date != nil

	switch {
	case f.HasRange():
		if hasDate {
			return 0, apperror.Filter("date", "tidak bisa digabung dengan startDate/endDate")
		}
		return ShapeRange, nil
	case hasClass && hasSubject && hasDate && hasStudent:
		return ShapeClassSubjectDateStudent, nil
	case hasClass && hasSubject && hasDate:
		return ShapeClassSubjectDate, nil
	case hasClass && hasSubject && !hasStudent:
		return ShapeClassSubject, nil
	case hasStudent && !hasClass && !hasSubject && !hasDate:
		return ShapeStudent, nil
	case f.IsEmpty():
		return ShapeAll, nil
	}

	switch {
	case hasClass && !hasSubject:
		return 0, apperror.Filter("subjectId", "wajib diisi bersama classId (atau pakai startDate/endDate)")
	case hasSubject && !hasClass:
		return 0, apperror.Filter("classId", "wajib diisi bersama subjectId (atau pakai startDate/endDate)")
	case hasDate:
		return 0, apperror.Filter("date", "wajib diisi bersama classId dan subjectId")
	case hasStudent:
		return 0, apperror.Filter("studentId", "bersama classId+subjectId butuh date atau startDate/endDate")
	default:
		return 0, apperror.Filter("", "kombinasi filter tidak didukung")
	}
}

// scoped: FROM + JOIN + WHERE sesuai shape. Dipakai bersama oleh list & stats.
func (s *AttendanceService) scoped(ctx context.Context, f dto.Filter) (*gorm.DB, error) {
	shape, err := SelectShape(f)
	if err != nil {
		return nil, err
	}

	q := s.DB.WithContext(ctx).
		Table("attendance_records AS ar").
		Joins("JOIN users u ON u.id = ar.attendance_record_student_id").
		Joins("JOIN classes c ON c.class_id = ar.attendance_record_class_id").
		Joins("JOIN subjects s ON s.subject_id = ar.attendance_record_subject_id")

	switch shape {
	case ShapeRange:
		q = q.Where("ar.attendance_record_date BETWEEN ? AND ?", *f.StartDate, *f.EndDate)
		if f.ClassID != nil {
			q = q.Where("ar.attendance_record_class_id = ?", *f.ClassID)
		}
		if f.SubjectID != nil {
			q = q.Where("ar.attendance_record_subject_id = ?", *f.SubjectID)
		}
		if f.StudentID != nil {
			q = q.Where("ar.attendance_record_student_id = ?", *f.StudentID)
		}
	case ShapeClassSubjectDateStudent:
		q = q.Where("ar.attendance_record_class_id = ? AND ar.attendance_record_subject_id = ? AND ar.attendance_record_date = ? AND ar.attendance_record_student_id = ?",
			*f.ClassID, *f.SubjectID, *f.Date, *f.StudentID)
	case ShapeClassSubjectDate:
		q = q.Where("ar.attendance_record_class_id = ? AND ar.attendance_record_subject_id = ? AND ar.attendance_record_date = ?",
			*f.ClassID, *f.SubjectID, *f.Date)
	case ShapeClassSubject:
		q = q.Where("ar.attendance_record_class_id = ? AND ar.attendance_record_subject_id = ?",
			*f.ClassID, *f.SubjectID)
	case ShapeStudent:
		q = q.Where("ar.attendance_record_student_id = ?", *f.StudentID)
	}
	return q, nil
}

// List: semua baris yang cocok, urut date DESC, nama siswa ASC.
func (s *AttendanceService) List(ctx context.Context, f dto.Filter) ([]dto.AttendanceRecordView, error) {
	rows, _, err := s.list(ctx, f, 0, 0, false)
	return rows, err
}

// ListPage: sama dengan List + LIMIT/OFFSET, plus total sebelum paging.
func (s *AttendanceService) ListPage(ctx context.Context, f dto.Filter, limit, offset int) ([]dto.AttendanceRecordView, int64, error) {
	return s.list(ctx, f, limit, offset, true)
}

func (s *AttendanceService) list(ctx context.Context, f dto.Filter, limit, offset int, withTotal bool) ([]dto.AttendanceRecordView, int64, error) {
	var total int64
	if withTotal {
		cq, err := s.scoped(ctx, f)
		if err != nil {
			return nil, 0, err
		}
		if err := cq.Count(&total).Error; err != nil {
			return nil, 0, apperror.Query("count attendance", err)
		}
	}

	q, err := s.scoped(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	q = q.Select(viewColumns).Order(listOrder)
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	rows := make([]dto.AttendanceRecordView, 0)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, apperror.Query("list attendance", err)
	}
	for i := range rows {
		rows[i].AttendanceRecordDate = dto.FormatDate(rows[i].AttendanceRecordDateRaw)
	}
	if !withTotal {
		total = int64(len(rows))
	}
	return rows, total, nil
}
