package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance_backend/internals/databases/dbtest"
	"attendance_backend/internals/helpers/apperror"
)

func TestAttachSubject_Idempotent(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	class := dbtest.Class(t, db, "CSE A", "CSEA")
	subject := dbtest.Subject(t, db, "Algorithms", "ALG")

	first, err := AttachSubject(ctx, db, class.ClassID, subject.SubjectID)
	require.NoError(t, err)
	second, err := AttachSubject(ctx, db, class.ClassID, subject.SubjectID)
	require.NoError(t, err)
	assert.Equal(t, first.ClassSubjectID, second.ClassSubjectID)

	rows, err := ListSubjects(ctx, db)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 1, rows[0].ClassCount)
}

func TestAttachSubject_NotFound(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	class := dbtest.Class(t, db, "CSE A", "CSEA")

	_, err := AttachSubject(ctx, db, class.ClassID, uuid.New())
	var nf *apperror.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = AttachSubject(ctx, db, uuid.New(), uuid.New())
	assert.ErrorAs(t, err, &nf)
}

func TestCreateSubject_DuplicateCode(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	s, err := CreateSubject(ctx, db, "Basis Data", "bd", nil)
	require.NoError(t, err)
	assert.Equal(t, "BD", s.SubjectCode)

	_, err = CreateSubject(ctx, db, "Basis Data 2", "BD", nil)
	assert.Equal(t, 409, apperror.HTTPStatus(err))
}
