package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"attendance_backend/internals/databases/dbtest"
	"attendance_backend/internals/features/attendance/records/dto"
	"attendance_backend/internals/features/attendance/records/model"
	"attendance_backend/internals/helpers/apperror"
)

func TestSelectShape(t *testing.T) {
	id := func() *uuid.UUID { u := uuid.New(); return &u }
	d := func() *datatypes.Date { v, _ := dto.ParseDate("2024-03-10"); return &v }

	tests := []struct {
		name    string
		f       dto.Filter
		want    Shape
		wantErr bool
	}{
		{"empty", dto.Filter{}, ShapeAll, false},
		{"student only", dto.Filter{StudentID: id()}, ShapeStudent, false},
		{"class+subject", dto.Filter{ClassID: id(), SubjectID: id()}, ShapeClassSubject, false},
		{"class+subject+date", dto.Filter{ClassID: id(), SubjectID: id(), Date: d()}, ShapeClassSubjectDate, false},
		{"class+subject+date+student", dto.Filter{ClassID: id(), SubjectID: id(), Date: d(), StudentID: id()}, ShapeClassSubjectDateStudent, false},
		{"range", dto.Filter{StartDate: d(), EndDate: d()}, ShapeRange, false},
		{"range+student", dto.Filter{StartDate: d(), EndDate: d(), StudentID: id()}, ShapeRange, false},
		{"range+class", dto.Filter{StartDate: d(), EndDate: d(), ClassID: id()}, ShapeRange, false},
		{"range+all ids", dto.Filter{StartDate: d(), EndDate: d(), ClassID: id(), SubjectID: id(), StudentID: id()}, ShapeRange, false},

		{"range+date", dto.Filter{StartDate: d(), EndDate: d(), Date: d()}, 0, true},
		{"class only", dto.Filter{ClassID: id()}, 0, true},
		{"subject only", dto.Filter{SubjectID: id()}, 0, true},
		{"date only", dto.Filter{Date: d()}, 0, true},
		{"student+date", dto.Filter{StudentID: id(), Date: d()}, 0, true},
		{"class+subject+student", dto.Filter{ClassID: id(), SubjectID: id(), StudentID: id()}, 0, true},
		{"student+class", dto.Filter{StudentID: id(), ClassID: id()}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectShape(tt.f)
			if tt.wantErr {
				var fe *apperror.InvalidFilterError
				assert.ErrorAs(t, err, &fe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestList_OrderedByDateDescThenStudentName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mark(t, f.bob, "2024-03-10", model.AttendancePresent)
	f.mark(t, f.alice, "2024-03-10", model.AttendanceAbsent)
	f.mark(t, f.alice, "2024-03-11", model.AttendanceLate)

	rows, err := f.svc.List(ctx, dto.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2024-03-11", rows[0].AttendanceRecordDate)
	assert.Equal(t, "Alice", rows[0].StudentName)
	assert.Equal(t, "2024-03-10", rows[1].AttendanceRecordDate)
	assert.Equal(t, "Alice", rows[1].StudentName)
	assert.Equal(t, "Bob", rows[2].StudentName)

	assert.Equal(t, "CSE A", rows[0].ClassName)
	assert.Equal(t, "Algorithms", rows[0].SubjectName)
	require.NotNil(t, rows[0].StudentRollNumber)
	assert.Equal(t, "001", *rows[0].StudentRollNumber)
	assert.Equal(t, "late", rows[0].AttendanceRecordStatus)
}

func TestList_EmptyResultIsNotAnError(t *testing.T) {
	f := newFixture(t)

	rows, err := f.svc.List(context.Background(), f.classSubject())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestList_ClassSubjectDate(t *testing.T) {
	f := newFixture(t)
	f.mark(t, f.alice, "2024-03-10", model.AttendancePresent)
	f.mark(t, f.bob, "2024-03-10", model.AttendanceAbsent)
	f.mark(t, f.alice, "2024-03-11", model.AttendancePresent)

	flt := f.classSubject()
	flt.Date = day(t, "2024-03-10").Date

	rows, err := f.svc.List(context.Background(), flt)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "2024-03-10", r.AttendanceRecordDate)
	}

	flt.StudentID = &f.bob.ID
	rows, err = f.svc.List(context.Background(), flt)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.bob.ID, rows[0].AttendanceRecordStudentID)
	assert.Equal(t, "absent", rows[0].AttendanceRecordStatus)
}

func TestList_StudentOnly(t *testing.T) {
	f := newFixture(t)
	f.mark(t, f.alice, "2024-03-10", model.AttendancePresent)
	f.mark(t, f.alice, "2024-03-12", model.AttendancePresent)
	f.mark(t, f.bob, "2024-03-10", model.AttendanceAbsent)

	rows, err := f.svc.List(context.Background(), dto.Filter{StudentID: &f.alice.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03-12", rows[0].AttendanceRecordDate)
	assert.Equal(t, "2024-03-10", rows[1].AttendanceRecordDate)
}

func TestList_RangeInclusiveWithNarrowing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mark(t, f.alice, "2024-03-09", model.AttendancePresent) // di luar range
	f.mark(t, f.alice, "2024-03-10", model.AttendancePresent)
	f.mark(t, f.alice, "2024-03-12", model.AttendanceAbsent)
	f.mark(t, f.bob, "2024-03-11", model.AttendancePresent)

	// kelas lain di dalam range
	other := dbtest.Class(t, f.db, "CSE B", "CSEB")
	d, _ := dto.ParseDate("2024-03-11")
	_, err := f.svc.MarkAttendance(ctx, MarkInput{
		StudentID: f.alice.ID, ClassID: other.ClassID, SubjectID: f.subject.SubjectID,
		Date: d, Status: model.AttendanceLate,
	}, f.adminMarker())
	require.NoError(t, err)

	start, _ := dto.ParseDate("2024-03-10")
	end, _ := dto.ParseDate("2024-03-12")
	rng := dto.Filter{StartDate: &start, EndDate: &end}

	rows, err := f.svc.List(ctx, rng)
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	withStudent := rng
	withStudent.StudentID = &f.alice.ID
	rows, err = f.svc.List(ctx, withStudent)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	withClass := withStudent
	withClass.ClassID = &f.class.ClassID
	rows, err = f.svc.List(ctx, withClass)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03-12", rows[0].AttendanceRecordDate)
	assert.Equal(t, "2024-03-10", rows[1].AttendanceRecordDate)
}

func TestList_RejectsUnsupportedFilter(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List(context.Background(), dto.Filter{ClassID: &f.class.ClassID})
	var fe *apperror.InvalidFilterError
	assert.ErrorAs(t, err, &fe)
}

func TestListPage(t *testing.T) {
	f := newFixture(t)
	f.mark(t, f.alice, "2024-03-10", model.AttendancePresent)
	f.mark(t, f.alice, "2024-03-11", model.AttendancePresent)
	f.mark(t, f.alice, "2024-03-12", model.AttendancePresent)

	rows, total, err := f.svc.ListPage(context.Background(), dto.Filter{}, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03-12", rows[0].AttendanceRecordDate)

	rows, total, err = f.svc.ListPage(context.Background(), dto.Filter{}, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-10", rows[0].AttendanceRecordDate)
}
