package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance_backend/internals/databases/dbtest"
	classModel "attendance_backend/internals/features/academics/classes/model"
	subjectModel "attendance_backend/internals/features/academics/subjects/model"
	"attendance_backend/internals/helpers/apperror"
)

func TestClassCodeFromName(t *testing.T) {
	assert.Equal(t, "CSEA", ClassCodeFromName("CSE A"))
	assert.Equal(t, "XIIPA1", ClassCodeFromName("  xi  ipa 1 "))
}

func TestEnsureDefaults_Idempotent(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	first, err := EnsureDefaults(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, classModel.DefaultCode, first.Class.ClassCode)
	assert.Equal(t, "Default Class", first.Class.ClassName)
	assert.Equal(t, classModel.DefaultCode, first.Subject.SubjectCode)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := EnsureDefaults(ctx, db)
			assert.NoError(t, err)
			assert.Equal(t, first.Class.ClassID, d.Class.ClassID)
			assert.Equal(t, first.Subject.SubjectID, d.Subject.SubjectID)
		}()
	}
	wg.Wait()

	var classes, subjects int64
	require.NoError(t, db.Model(&classModel.ClassModel{}).Count(&classes).Error)
	require.NoError(t, db.Model(&subjectModel.SubjectModel{}).Count(&subjects).Error)
	assert.EqualValues(t, 1, classes)
	assert.EqualValues(t, 1, subjects)
}

func TestGetOrCreateClassByName(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	existing := dbtest.Class(t, db, "Kelas 7A", "K7A-2024")

	got, err := GetOrCreateClassByName(ctx, db, " Kelas 7A ")
	require.NoError(t, err)
	assert.Equal(t, existing.ClassID, got.ClassID)

	created, err := GetOrCreateClassByName(ctx, db, "Kelas 7B")
	require.NoError(t, err)
	assert.Equal(t, "KELAS7B", created.ClassCode)

	again, err := GetOrCreateClassByName(ctx, db, "Kelas 7B")
	require.NoError(t, err)
	assert.Equal(t, created.ClassID, again.ClassID)

	_, err = GetOrCreateClassByName(ctx, db, "")
	var ie *apperror.InvalidInputError
	assert.ErrorAs(t, err, &ie)
}

func TestEnsureMembership_KeepsCRFlag(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	class := dbtest.Class(t, db, "CSE A", "CSEA")
	u := dbtest.User(t, db, "Carol", "cr", "")

	_, err := SetClassRepresentative(ctx, db, class.ClassID, u.ID, true)
	require.NoError(t, err)

	m, err := EnsureMembership(ctx, db, u.ID, class.ClassID)
	require.NoError(t, err)
	assert.True(t, m.UserClassIsCR)

	ok, err := IsClassRepresentative(ctx, db, u.ID, class.ClassID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = SetClassRepresentative(ctx, db, class.ClassID, u.ID, false)
	require.NoError(t, err)
	ok, err = IsClassRepresentative(ctx, db, u.ID, class.ClassID)
	require.NoError(t, err)
	assert.False(t, ok)

	var n int64
	require.NoError(t, db.Model(&classModel.UserClassModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSetClassRepresentative_UnknownClass(t *testing.T) {
	db := dbtest.Open(t)
	u := dbtest.User(t, db, "Carol", "cr", "")

	_, err := SetClassRepresentative(context.Background(), db, uuid.New(), u.ID, true)
	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestStudentsByClass(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	class := dbtest.Class(t, db, "CSE A", "CSEA")

	bob := dbtest.User(t, db, "Bob", "student", "002")
	alice := dbtest.User(t, db, "Alice", "student", "001")
	carol := dbtest.User(t, db, "Carol", "cr", "")
	teacher := dbtest.User(t, db, "Pak Budi", "teacher", "")
	for _, u := range []uuid.UUID{bob.ID, alice.ID, teacher.ID} {
		dbtest.Member(t, db, u, class.ClassID, false)
	}
	dbtest.Member(t, db, carol.ID, class.ClassID, true)

	rows, err := StudentsByClass(ctx, db, class.ClassID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, "Bob", rows[1].Name)
	assert.Equal(t, "Carol", rows[2].Name)
	assert.True(t, rows[2].IsCR)

	list, err := ListClasses(ctx, db)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 4, list[0].StudentCount)

	_, err = StudentsByClass(ctx, db, uuid.New())
	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
