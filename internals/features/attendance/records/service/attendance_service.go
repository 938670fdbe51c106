package service

import (
	"time"

	"gorm.io/gorm"
)

const defaultBulkConcurrency = 8

// AttendanceService: list, stats, dan mark absensi di atas satu *gorm.DB.
type AttendanceService struct {
	DB *gorm.DB

	// batas goroutine paralel saat bulk mark
	BulkConcurrency int

	// Now bisa di-override di test
	Now func() time.Time
}

func NewAttendanceService(db *gorm.DB, bulkConcurrency int) *AttendanceService {
	if bulkConcurrency < 1 {
		bulkConcurrency = defaultBulkConcurrency
	}
	return &AttendanceService{
		DB:              db,
		BulkConcurrency: bulkConcurrency,
		Now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *AttendanceService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// today: tanggal UTC hari ini, jam 00:00.
func (s *AttendanceService) today() time.Time {
	return dayUTC(s.now())
}

func dayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
