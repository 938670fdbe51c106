package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"

	"attendance_backend/internals/constants"
	classModel "attendance_backend/internals/features/academics/classes/model"
	classService "attendance_backend/internals/features/academics/classes/service"
	"attendance_backend/internals/features/attendance/records/dto"
	"attendance_backend/internals/features/attendance/records/model"
	userService "attendance_backend/internals/features/users/users/service"
	"attendance_backend/internals/helpers/apperror"
)

// Marker: identitas pemanggil yang menandai absensi.
type Marker struct {
	UserID uuid.UUID
	Role   string
}

type MarkInput struct {
	StudentID uuid.UUID
	ClassID   uuid.UUID
	SubjectID uuid.UUID
	Date      datatypes.Date
	Status    model.AttendanceStatus
	Notes     *string
}

var naturalKeyColumns = []clause.Column{
	{Name: "attendance_record_student_id"},
	{Name: "attendance_record_class_id"},
	{Name: "attendance_record_subject_id"},
	{Name: "attendance_record_date"},
}

func normalizeDay(d datatypes.Date) datatypes.Date {
	return datatypes.Date(dayUTC(time.Time(d)))
}

func validateMarkInput(in MarkInput) error {
	switch {
	case in.StudentID == uuid.Nil:
		return apperror.Input("studentId", "wajib diisi")
	case in.ClassID == uuid.Nil:
		return apperror.Input("classId", "wajib diisi")
	case in.SubjectID == uuid.Nil:
		return apperror.Input("subjectId", "wajib diisi")
	case !in.Status.Valid():
		return apperror.Status(string(in.Status))
	}
	return nil
}

// upsert: INSERT ... ON CONFLICT (natural key) DO UPDATE lalu select ulang.
// created_at baris lama tidak disentuh.
func (s *AttendanceService) upsert(ctx context.Context, in MarkInput, markedBy uuid.UUID) (*model.AttendanceRecordModel, error) {
	if err := validateMarkInput(in); err != nil {
		return nil, err
	}
	if markedBy == uuid.Nil {
		return nil, apperror.Input("markedBy", "wajib diisi")
	}

	var notes *string
	if in.Notes != nil {
		if t := strings.TrimSpace(*in.Notes); t != "" {
			notes = &t
		}
	}

	now := s.now()
	day := normalizeDay(in.Date)
	rec := &model.AttendanceRecordModel{
		AttendanceRecordStudentID: in.StudentID,
		AttendanceRecordClassID:   in.ClassID,
		AttendanceRecordSubjectID: in.SubjectID,
		AttendanceRecordDate:      day,
		AttendanceRecordStatus:    in.Status,
		AttendanceRecordNotes:     notes,
		AttendanceRecordMarkedBy:  markedBy,
		AttendanceRecordCreatedAt: now,
		AttendanceRecordUpdatedAt: now,
	}

	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: naturalKeyColumns,
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_record_status",
				"attendance_record_notes",
				"attendance_record_marked_by",
				"attendance_record_updated_at",
			}),
		}).
		Create(rec).Error; err != nil {
		return nil, apperror.Query("upsert attendance", err)
	}

	var out model.AttendanceRecordModel
	if err := s.DB.WithContext(ctx).
		Where("attendance_record_student_id = ? AND attendance_record_class_id = ? AND attendance_record_subject_id = ? AND attendance_record_date = ?",
			in.StudentID, in.ClassID, in.SubjectID, day).
		First(&out).Error; err != nil {
		return nil, apperror.Query("reselect attendance", err)
	}
	return &out, nil
}

// checkScope: CR hanya boleh menandai kelas tempat dia is_cr = true.
func (s *AttendanceService) checkScope(ctx context.Context, marker Marker, classID uuid.UUID) error {
	if marker.Role != constants.RoleCR {
		return nil
	}
	ok, err := classService.IsClassRepresentative(ctx, s.DB, marker.UserID, classID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Forbidden("CR hanya boleh menandai absensi kelasnya sendiri")
	}
	return nil
}

// MarkAttendance: idempoten per (student, class, subject, date).
func (s *AttendanceService) MarkAttendance(ctx context.Context, in MarkInput, marker Marker) (*model.AttendanceRecordModel, error) {
	if err := validateMarkInput(in); err != nil {
		return nil, err
	}
	if err := s.checkScope(ctx, marker, in.ClassID); err != nil {
		return nil, err
	}
	return s.upsert(ctx, in, marker.UserID)
}

// crClassSet: kelas tempat marker menjabat CR, dimuat sekali per batch.
func (s *AttendanceService) crClassSet(ctx context.Context, marker Marker) (map[uuid.UUID]bool, error) {
	if marker.Role != constants.RoleCR {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := s.DB.WithContext(ctx).
		Model(&classModel.UserClassModel{}).
		Where("user_class_user_id = ? AND user_class_is_cr = ?", marker.UserID, true).
		Pluck("user_class_class_id", &ids).Error; err != nil {
		return nil, apperror.Query("load cr classes", err)
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func parseItemID(raw, field string, fallback uuid.UUID) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Input(field, "harus UUID")
	}
	return id, nil
}

func (s *AttendanceService) markItem(
	ctx context.Context,
	item dto.BulkMarkItem,
	defaults classService.Defaults,
	marker Marker,
	crClasses map[uuid.UUID]bool,
) (*model.AttendanceRecordModel, error) {
	status, err := model.ParseStatus(item.Status)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.Date) == "" {
		return nil, apperror.Input("date", "wajib diisi")
	}
	day, err := dto.ParseDate(item.Date)
	if err != nil {
		return nil, apperror.Input("date", "format tanggal harus YYYY-MM-DD")
	}
	classID, err := parseItemID(item.ClassID, "classId", defaults.Class.ClassID)
	if err != nil {
		return nil, err
	}
	subjectID, err := parseItemID(item.SubjectID, "subjectId", defaults.Subject.SubjectID)
	if err != nil {
		return nil, err
	}
	if marker.Role == constants.RoleCR && !crClasses[classID] {
		return nil, apperror.Forbidden("CR hanya boleh menandai absensi kelasnya sendiri")
	}

	// student terakhir: rollNumber bisa membuat user placeholder
	var studentID uuid.UUID
	switch {
	case strings.TrimSpace(item.StudentID) != "":
		if studentID, err = parseItemID(item.StudentID, "studentId", uuid.Nil); err != nil {
			return nil, err
		}
	case strings.TrimSpace(item.RollNumber) != "":
		u, err := userService.GetOrCreateStudentByRollNumber(ctx, s.DB, item.RollNumber)
		if err != nil {
			return nil, err
		}
		studentID = u.ID
	default:
		return nil, apperror.Input("studentId", "studentId atau rollNumber wajib diisi")
	}

	return s.upsert(ctx, MarkInput{
		StudentID: studentID,
		ClassID:   classID,
		SubjectID: subjectID,
		Date:      day,
		Status:    status,
		Notes:     item.Notes,
	}, marker.UserID)
}

// MarkAttendanceBulk: satu unit kerja per item, paralel terbatas.
// Hasil selalu sepanjang input dan urut sesuai input; item yang sukses tetap ter-commit
// walaupun item lain gagal.
func (s *AttendanceService) MarkAttendanceBulk(ctx context.Context, items []dto.BulkMarkItem, marker Marker) ([]dto.BulkMarkResult, error) {
	if len(items) == 0 {
		return nil, apperror.Input("attendanceRecords", "minimal satu item")
	}
	if marker.UserID == uuid.Nil {
		return nil, apperror.Input("markedBy", "wajib diisi")
	}

	defaults, err := classService.EnsureDefaults(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	crClasses, err := s.crClassSet(ctx, marker)
	if err != nil {
		return nil, err
	}

	results := make([]dto.BulkMarkResult, len(items))

	limit := s.BulkConcurrency
	if limit < 1 {
		limit = defaultBulkConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range items {
		g.Go(func() error {
			res := dto.BulkMarkResult{Index: i}
			rec, err := s.markItem(gctx, items[i], defaults, marker, crClasses)
			if err != nil {
				res.Error = err.Error()
				res.ErrorCode = apperror.Code(err)
			} else {
				res.Success = true
				res.Record = dto.FromModel(rec)
			}
			results[i] = res
			return nil // error per item tidak membatalkan item lain
		})
	}
	_ = g.Wait()

	return results, nil
}
