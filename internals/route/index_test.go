package routes

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"attendance_backend/internals/configs"
	"attendance_backend/internals/databases/dbtest"
	userService "attendance_backend/internals/features/users/users/service"
	helper "attendance_backend/internals/helpers"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	cfg := &configs.Config{
		Environment:     "test",
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		BulkConcurrency: 2,
	}
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: helper.FromFiberError,
	})
	SetupRoutes(app, db, cfg)
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func registerAndLogin(t *testing.T, app *fiber.App, body map[string]any) (token, id string) {
	t.Helper()
	status, res := call(t, app, fiber.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, fiber.StatusCreated, status, res)

	status, res = call(t, app, fiber.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    body["email"],
		"password": body["password"],
	})
	require.Equal(t, fiber.StatusOK, status, res)
	data := res["data"].(map[string]any)
	user := data["user"].(map[string]any)
	return data["access_token"].(string), user["id"].(string)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	status, res := call(t, app, fiber.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", res["status"])
	assert.Equal(t, "test", res["environment"])
}

func TestPrivateRoutesNeedToken(t *testing.T) {
	app, _ := newTestApp(t)

	status, res := call(t, app, fiber.MethodGet, "/api/attendance/records", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, false, res["success"])

	status, _ = call(t, app, fiber.MethodGet, "/api/attendance/records", "not-a-jwt", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAttendanceFlow(t *testing.T) {
	app, db := newTestApp(t)

	teacherToken, _ := registerAndLogin(t, app, map[string]any{
		"name": "Bu Guru", "email": "guru@example.com", "password": "rahasia123", "role": "teacher",
	})
	studentToken, studentID := registerAndLogin(t, app, map[string]any{
		"name": "Alice", "email": "alice@example.com", "password": "rahasia123", "student_id": "001",
	})

	class := dbtest.Class(t, db, "CSE A", "CSEA")
	subject := dbtest.Subject(t, db, "Algorithms", "ALG")
	bob := dbtest.User(t, db, "Bob", "student", "002")

	status, res := call(t, app, fiber.MethodPost, "/api/attendance/mark/bulk", teacherToken, map[string]any{
		"attendanceRecords": []map[string]any{
			{"studentId": studentID, "classId": class.ClassID.String(), "subjectId": subject.SubjectID.String(), "date": "2024-03-20", "status": "present"},
			{"studentId": bob.ID.String(), "classId": class.ClassID.String(), "subjectId": subject.SubjectID.String(), "date": "2024-03-20", "status": "absent"},
			{"studentId": bob.ID.String(), "classId": class.ClassID.String(), "subjectId": subject.SubjectID.String(), "date": "2024-03-20", "status": "sleeping"},
		},
	})
	require.Equal(t, fiber.StatusOK, status, res)
	sum := res["data"].(map[string]any)
	assert.EqualValues(t, 3, sum["total"])
	assert.EqualValues(t, 2, sum["succeeded"])
	assert.EqualValues(t, 1, sum["failed"])

	// guru lihat semua
	status, res = call(t, app, fiber.MethodGet, "/api/attendance/records?date=2024-03-20&classId="+class.ClassID.String()+"&subjectId="+subject.SubjectID.String(), teacherToken, nil)
	require.Equal(t, fiber.StatusOK, status, res)
	assert.Len(t, res["data"], 2)

	// siswa dipaksa ke datanya sendiri walau minta milik orang lain
	status, res = call(t, app, fiber.MethodGet, "/api/attendance/records?studentId="+bob.ID.String(), studentToken, nil)
	require.Equal(t, fiber.StatusOK, status, res)
	rows := res["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, studentID, rows[0].(map[string]any)["attendance_record_student_id"])

	status, _ = call(t, app, fiber.MethodPost, "/api/attendance/mark", studentToken, map[string]any{
		"studentId": studentID, "classId": class.ClassID.String(), "subjectId": subject.SubjectID.String(),
		"date": "2024-03-21", "status": "present",
	})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, res = call(t, app, fiber.MethodGet, "/api/attendance/stats", teacherToken, nil)
	require.Equal(t, fiber.StatusOK, status, res)
	st := res["data"].(map[string]any)
	assert.EqualValues(t, 2, st["totalRecords"])
}

func TestLogoutRevokesToken(t *testing.T) {
	app, _ := newTestApp(t)

	token, _ := registerAndLogin(t, app, map[string]any{
		"name": "Pak Guru", "email": "pak@example.com", "password": "rahasia123", "role": "teacher",
	})

	status, _ := call(t, app, fiber.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = call(t, app, fiber.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, res := call(t, app, fiber.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Token revoked", res["message"])
}

func TestDeletedUserTokenRejected(t *testing.T) {
	app, db := newTestApp(t)

	token, id := registerAndLogin(t, app, map[string]any{
		"name": "Cici", "email": "cici@example.com", "password": "rahasia123",
	})
	require.NoError(t, userService.SoftDelete(context.Background(), db, uuid.MustParse(id)))

	status, res := call(t, app, fiber.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Akun tidak aktif", res["message"])
}
