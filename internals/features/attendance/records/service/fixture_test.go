package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"attendance_backend/internals/databases/dbtest"
	classModel "attendance_backend/internals/features/academics/classes/model"
	subjectModel "attendance_backend/internals/features/academics/subjects/model"
	"attendance_backend/internals/features/attendance/records/dto"
	"attendance_backend/internals/features/attendance/records/model"
	userModel "attendance_backend/internals/features/users/users/model"
)

var fixedNow = time.Date(2024, 3, 20, 12, 30, 0, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	svc     *AttendanceService
	admin   *userModel.UserModel
	class   *classModel.ClassModel
	subject *subjectModel.SubjectModel
	alice   *userModel.UserModel
	bob     *userModel.UserModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	svc := NewAttendanceService(db, 4)
	svc.Now = func() time.Time { return fixedNow }

	return &fixture{
		db:      db,
		svc:     svc,
		admin:   dbtest.User(t, db, "Admin", "admin", ""),
		class:   dbtest.Class(t, db, "CSE A", "CSEA"),
		subject: dbtest.Subject(t, db, "Algorithms", "ALG"),
		alice:   dbtest.User(t, db, "Alice", "student", "001"),
		bob:     dbtest.User(t, db, "Bob", "student", "002"),
	}
}

func (f *fixture) adminMarker() Marker {
	return Marker{UserID: f.admin.ID, Role: "admin"}
}

func day(t *testing.T, s string) dto.Filter {
	t.Helper()
	d, err := dto.ParseDate(s)
	require.NoError(t, err)
	return dto.Filter{Date: &d}
}

// mark: tandai student di kelas & mapel fixture.
func (f *fixture) mark(t *testing.T, student *userModel.UserModel, date string, status model.AttendanceStatus) *model.AttendanceRecordModel {
	t.Helper()
	d, err := dto.ParseDate(date)
	require.NoError(t, err)
	rec, err := f.svc.MarkAttendance(context.Background(), MarkInput{
		StudentID: student.ID,
		ClassID:   f.class.ClassID,
		SubjectID: f.subject.SubjectID,
		Date:      d,
		Status:    status,
	}, f.adminMarker())
	require.NoError(t, err)
	return rec
}

func (f *fixture) classSubject() dto.Filter {
	c, s := f.class.ClassID, f.subject.SubjectID
	return dto.Filter{ClassID: &c, SubjectID: &s}
}
