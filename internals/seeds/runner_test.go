package seeds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance_backend/internals/configs"
	"attendance_backend/internals/databases/dbtest"
	classModel "attendance_backend/internals/features/academics/classes/model"
	userModel "attendance_backend/internals/features/users/users/model"
)

func TestRunAllSeeds(t *testing.T) {
	db := dbtest.Open(t)

	file := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"name": "Bu Guru", "email": "Guru@Example.com", "password": "rahasia123", "role": "teacher"},
		{"name": "Tanpa Role", "email": "x@example.com", "password": "rahasia123", "role": "kepala"},
		{"name": "Admin Dobel", "email": "admin@example.com", "password": "lain", "role": "admin"}
	]`), 0o600))

	cfg := &configs.Config{
		AdminEmail:    "admin@example.com",
		AdminPassword: "rahasia-admin",
		AdminName:     "Administrator",
		SeedUsersFile: file,
	}

	// dua kali: harus idempoten
	require.NoError(t, RunAllSeeds(db, cfg))
	require.NoError(t, RunAllSeeds(db, cfg))

	var users []userModel.UserModel
	require.NoError(t, db.Order("email ASC").Find(&users).Error)
	require.Len(t, users, 2)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, "admin", users[0].Role)
	assert.Equal(t, "guru@example.com", users[1].Email)

	var classes int64
	require.NoError(t, db.Model(&classModel.ClassModel{}).Where("class_code = ?", "DEFAULT").Count(&classes).Error)
	assert.EqualValues(t, 1, classes)
}

func TestRunAllSeeds_MissingFile(t *testing.T) {
	db := dbtest.Open(t)
	cfg := &configs.Config{SeedUsersFile: filepath.Join(t.TempDir(), "nope.json")}
	assert.Error(t, RunAllSeeds(db, cfg))
}
