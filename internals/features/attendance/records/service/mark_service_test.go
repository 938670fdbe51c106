package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance_backend/internals/databases/dbtest"
	classModel "attendance_backend/internals/features/academics/classes/model"
	"attendance_backend/internals/features/attendance/records/dto"
	"attendance_backend/internals/features/attendance/records/model"
	userModel "attendance_backend/internals/features/users/users/model"
	"attendance_backend/internals/helpers/apperror"
)

func countRecords(t *testing.T, f *fixture) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.AttendanceRecordModel{}).Count(&n).Error)
	return n
}

func TestMarkAttendance_UpsertKeepsOneRow(t *testing.T) {
	f := newFixture(t)

	first := f.mark(t, f.alice, "2024-03-10", model.AttendanceAbsent)
	second := f.mark(t, f.alice, "2024-03-10", model.AttendancePresent)

	assert.Equal(t, first.AttendanceRecordID, second.AttendanceRecordID)
	assert.Equal(t, model.AttendancePresent, second.AttendanceRecordStatus)
	assert.EqualValues(t, 1, countRecords(t, f))

	// mark ulang dengan status sama tetap idempoten
	f.mark(t, f.alice, "2024-03-10", model.AttendancePresent)
	assert.EqualValues(t, 1, countRecords(t, f))

	// tanggal lain → baris baru
	f.mark(t, f.alice, "2024-03-11", model.AttendancePresent)
	assert.EqualValues(t, 2, countRecords(t, f))
}

func TestMarkAttendance_NotesAndMarker(t *testing.T) {
	f := newFixture(t)
	d, _ := dto.ParseDate("2024-03-10")
	notes := "  surat dokter  "

	rec, err := f.svc.MarkAttendance(context.Background(), MarkInput{
		StudentID: f.alice.ID, ClassID: f.class.ClassID, SubjectID: f.subject.SubjectID,
		Date: d, Status: model.AttendanceOfficial, Notes: &notes,
	}, f.adminMarker())
	require.NoError(t, err)
	require.NotNil(t, rec.AttendanceRecordNotes)
	assert.Equal(t, "surat dokter", *rec.AttendanceRecordNotes)
	assert.Equal(t, f.admin.ID, rec.AttendanceRecordMarkedBy)
	assert.Equal(t, "2024-03-10", dto.FormatDate(rec.AttendanceRecordDate))

	blank := "   "
	rec, err = f.svc.MarkAttendance(context.Background(), MarkInput{
		StudentID: f.alice.ID, ClassID: f.class.ClassID, SubjectID: f.subject.SubjectID,
		Date: d, Status: model.AttendanceOfficial, Notes: &blank,
	}, f.adminMarker())
	require.NoError(t, err)
	assert.Nil(t, rec.AttendanceRecordNotes)
}

func TestMarkAttendance_InvalidStatus(t *testing.T) {
	f := newFixture(t)
	d, _ := dto.ParseDate("2024-03-10")

	_, err := f.svc.MarkAttendance(context.Background(), MarkInput{
		StudentID: f.alice.ID, ClassID: f.class.ClassID, SubjectID: f.subject.SubjectID,
		Date: d, Status: "sick",
	}, f.adminMarker())
	var se *apperror.InvalidStatusError
	assert.ErrorAs(t, err, &se)
	assert.EqualValues(t, 0, countRecords(t, f))
}

func TestMarkAttendance_CRScope(t *testing.T) {
	f := newFixture(t)
	cr := dbtest.User(t, f.db, "Carol", "cr", "")
	dbtest.Member(t, f.db, cr.ID, f.class.ClassID, true)
	other := dbtest.Class(t, f.db, "CSE B", "CSEB")
	d, _ := dto.ParseDate("2024-03-10")
	marker := Marker{UserID: cr.ID, Role: "cr"}

	_, err := f.svc.MarkAttendance(context.Background(), MarkInput{
		StudentID: f.alice.ID, ClassID: f.class.ClassID, SubjectID: f.subject.SubjectID,
		Date: d, Status: model.AttendancePresent,
	}, marker)
	require.NoError(t, err)

	_, err = f.svc.MarkAttendance(context.Background(), MarkInput{
		StudentID: f.alice.ID, ClassID: other.ClassID, SubjectID: f.subject.SubjectID,
		Date: d, Status: model.AttendancePresent,
	}, marker)
	var fb *apperror.ForbiddenError
	assert.ErrorAs(t, err, &fb)
}

func TestMarkAttendanceBulk_PartialFailureKeepsOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	items := []dto.BulkMarkItem{
		{StudentID: f.alice.ID.String(), ClassID: f.class.ClassID.String(), SubjectID: f.subject.SubjectID.String(), Date: "2024-03-10", Status: "present"},
		{StudentID: f.bob.ID.String(), ClassID: f.class.ClassID.String(), SubjectID: f.subject.SubjectID.String(), Date: "2024-03-10", Status: "sick"},
		{RollNumber: "042", Date: "2024-03-10", Status: "Absent"},
		{StudentID: f.bob.ID.String(), Date: "10-03-2024", Status: "present"},
		{Date: "2024-03-10", Status: "present"},
		{StudentID: f.bob.ID.String(), ClassID: "not-a-uuid", Date: "2024-03-10", Status: "late"},
	}

	results, err := f.svc.MarkAttendanceBulk(ctx, items, f.adminMarker())
	require.NoError(t, err)
	require.Len(t, results, len(items))

	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
	assert.True(t, results[0].Success)
	assert.Equal(t, "INVALID_STATUS", results[1].ErrorCode)
	assert.True(t, results[2].Success, results[2].Error)
	assert.Equal(t, "INVALID_INPUT", results[3].ErrorCode)
	assert.Equal(t, "INVALID_INPUT", results[4].ErrorCode)
	assert.Equal(t, "INVALID_INPUT", results[5].ErrorCode)

	// item sukses ter-commit walaupun item lain gagal
	assert.EqualValues(t, 2, countRecords(t, f))

	// rollNumber tanpa kelas/mapel → user placeholder + kelas/mapel default
	var placeholder userModel.UserModel
	require.NoError(t, f.db.Where("student_id = ?", "042").First(&placeholder).Error)
	assert.True(t, placeholder.IsPlaceholder())
	assert.Equal(t, "student042@college.edu", placeholder.Email)

	rec := results[2].Record
	require.NotNil(t, rec)
	assert.Equal(t, placeholder.ID, rec.AttendanceRecordStudentID)
	assert.Equal(t, "absent", rec.AttendanceRecordStatus)

	var defClass classModel.ClassModel
	require.NoError(t, f.db.Where("class_code = ?", classModel.DefaultCode).First(&defClass).Error)
	assert.Equal(t, defClass.ClassID, rec.AttendanceRecordClassID)
}

func TestMarkAttendanceBulk_DuplicateItemsCollapse(t *testing.T) {
	f := newFixture(t)

	item := dto.BulkMarkItem{
		StudentID: f.alice.ID.String(), ClassID: f.class.ClassID.String(),
		SubjectID: f.subject.SubjectID.String(), Date: "2024-03-10", Status: "present",
	}
	results, err := f.svc.MarkAttendanceBulk(context.Background(), []dto.BulkMarkItem{item, item, item}, f.adminMarker())
	require.NoError(t, err)
	for _, r := range results {
		assert.True(t, r.Success, r.Error)
	}
	assert.EqualValues(t, 1, countRecords(t, f))
}

func TestMarkAttendanceBulk_CRForbiddenPerItem(t *testing.T) {
	f := newFixture(t)
	cr := dbtest.User(t, f.db, "Carol", "cr", "")
	dbtest.Member(t, f.db, cr.ID, f.class.ClassID, true)
	other := dbtest.Class(t, f.db, "CSE B", "CSEB")

	results, err := f.svc.MarkAttendanceBulk(context.Background(), []dto.BulkMarkItem{
		{StudentID: f.alice.ID.String(), ClassID: f.class.ClassID.String(), SubjectID: f.subject.SubjectID.String(), Date: "2024-03-10", Status: "present"},
		{StudentID: f.alice.ID.String(), ClassID: other.ClassID.String(), SubjectID: f.subject.SubjectID.String(), Date: "2024-03-10", Status: "present"},
	}, Marker{UserID: cr.ID, Role: "cr"})
	require.NoError(t, err)
	assert.True(t, results[0].Success, results[0].Error)
	assert.False(t, results[1].Success)
	assert.Equal(t, "FORBIDDEN", results[1].ErrorCode)
}

func TestMarkAttendanceBulk_EmptyInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.MarkAttendanceBulk(context.Background(), nil, f.adminMarker())
	var ie *apperror.InvalidInputError
	assert.ErrorAs(t, err, &ie)
}
