package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"attendance_backend/internals/features/attendance/records/dto"
	userService "attendance_backend/internals/features/users/users/service"
	"attendance_backend/internals/helpers/apperror"
)

const (
	DefaultSummaryDays = 90
	MaxSummaryDays     = 366
)

type statsRow struct {
	TotalRecords  int64 `gorm:"column:total_records"`
	PresentCount  int64 `gorm:"column:present_count"`
	AbsentCount   int64 `gorm:"column:absent_count"`
	LateCount     int64 `gorm:"column:late_count"`
	OfficialCount int64 `gorm:"column:official_count"`
}

const statsColumns = `COUNT(*) AS total_records,
	COALESCE(SUM(CASE WHEN ar.attendance_record_status = 'present' THEN 1 ELSE 0 END), 0) AS present_count,
	COALESCE(SUM(CASE WHEN ar.attendance_record_status = 'absent' THEN 1 ELSE 0 END), 0) AS absent_count,
	COALESCE(SUM(CASE WHEN ar.attendance_record_status = 'late' THEN 1 ELSE 0 END), 0) AS late_count,
	COALESCE(SUM(CASE WHEN ar.attendance_record_status = 'official' THEN 1 ELSE 0 END), 0) AS official_count`

// Percentage: part*100/total dibulatkan 2 desimal. total 0 → 0.
func Percentage(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)*10000/float64(total)) / 100
}

func buildStats(r statsRow) dto.Stats {
	return dto.Stats{
		TotalRecords:                  r.TotalRecords,
		PresentCount:                  r.PresentCount,
		AbsentCount:                   r.AbsentCount,
		LateCount:                     r.LateCount,
		OfficialCount:                 r.OfficialCount,
		AttendancePercentage:          Percentage(r.PresentCount, r.TotalRecords),
		EffectiveAttendancePercentage: Percentage(r.PresentCount+r.OfficialCount, r.TotalRecords),
	}
}

// GetStats memakai scope yang sama persis dengan List.
func (s *AttendanceService) GetStats(ctx context.Context, f dto.Filter) (dto.Stats, error) {
	q, err := s.scoped(ctx, f)
	if err != nil {
		return dto.Stats{}, err
	}
	var row statsRow
	if err := q.Select(statsColumns).Scan(&row).Error; err != nil {
		return dto.Stats{}, apperror.Query("attendance stats", err)
	}
	return buildStats(row), nil
}

// StudentSummary: stats satu siswa untuk N hari terakhir (termasuk hari ini).
func (s *AttendanceService) StudentSummary(ctx context.Context, studentID uuid.UUID, classID *uuid.UUID, days int) (dto.StudentSummary, error) {
	switch {
	case days == 0:
		days = DefaultSummaryDays
	case days < 0 || days > MaxSummaryDays:
		return dto.StudentSummary{}, apperror.Input("days", "harus 1..366")
	}

	if _, err := userService.FindUserByID(ctx, s.DB, studentID); err != nil {
		return dto.StudentSummary{}, err
	}

	end := s.today()
	start := end.AddDate(0, 0, -(days - 1))
	startD, endD := datatypes.Date(start), datatypes.Date(end)

	st, err := s.GetStats(ctx, dto.Filter{
		StudentID: &studentID,
		ClassID:   classID,
		StartDate: &startD,
		EndDate:   &endD,
	})
	if err != nil {
		return dto.StudentSummary{}, err
	}

	return dto.StudentSummary{
		StudentID:       studentID,
		ClassID:         classID,
		Days:            days,
		StartDate:       start.Format(dto.DateLayout),
		EndDate:         end.Format(dto.DateLayout),
		AttendedClasses: st.PresentCount + st.OfficialCount,
		Stats:           st,
	}, nil
}
