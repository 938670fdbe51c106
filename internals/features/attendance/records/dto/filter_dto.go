package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"attendance_backend/internals/helpers/apperror"
)

const DateLayout = "2006-01-02"

// Filter hasil normalisasi. nil = tidak difilter.
type Filter struct {
	ClassID   *uuid.UUID
	SubjectID *uuid.UUID
	StudentID *uuid.UUID
	Date      *datatypes.Date
	StartDate *datatypes.Date
	EndDate   *datatypes.Date
}

func (f Filter) HasRange() bool { return f.StartDate != nil && f.EndDate != nil }

func (f Filter) IsEmpty() bool {
	return f.ClassID == nil && f.SubjectID == nil && f.StudentID == nil &&
		f.Date == nil && f.StartDate == nil && f.EndDate == nil
}

// key kanonik → alias snake_case
var filterKeys = map[string]string{
	"classId":   "class_id",
	"subjectId": "subject_id",
	"studentId": "student_id",
	"date":      "date",
	"startDate": "start_date",
	"endDate":   "end_date",
}

// ParseDate: YYYY-MM-DD → datatypes.Date (UTC midnight).
func ParseDate(raw string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).UTC().Format(DateLayout)
}

// lookup: (nilai, ada?). Key kanonik menang atas alias.
func lookup(raw map[string]string, key string) (string, bool) {
	if v, ok := raw[key]; ok {
		return v, true
	}
	if alias := filterKeys[key]; alias != key {
		if v, ok := raw[alias]; ok {
			return v, true
		}
	}
	return "", false
}

func parseID(raw map[string]string, key string) (*uuid.UUID, error) {
	v, ok := lookup(raw, key)
	if !ok {
		return nil, nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, apperror.Filter(key, "tidak boleh kosong")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, apperror.Filter(key, "harus UUID")
	}
	return &id, nil
}

func parseDateKey(raw map[string]string, key string) (*datatypes.Date, error) {
	v, ok := lookup(raw, key)
	if !ok {
		return nil, nil
	}
	if strings.TrimSpace(v) == "" {
		return nil, apperror.Filter(key, "tidak boleh kosong")
	}
	d, err := ParseDate(v)
	if err != nil {
		return nil, apperror.Filter(key, "format tanggal harus YYYY-MM-DD")
	}
	return &d, nil
}

// NormalizeFilter mengubah query mentah menjadi Filter bertipe. Tanpa efek samping.
func NormalizeFilter(raw map[string]string) (Filter, error) {
	var (
		f   Filter
		err error
	)
	if f.ClassID, err = parseID(raw, "classId"); err != nil {
		return Filter{}, err
	}
	if f.SubjectID, err = parseID(raw, "subjectId"); err != nil {
		return Filter{}, err
	}
	if f.StudentID, err = parseID(raw, "studentId"); err != nil {
		return Filter{}, err
	}
	if f.Date, err = parseDateKey(raw, "date"); err != nil {
		return Filter{}, err
	}
	if f.StartDate, err = parseDateKey(raw, "startDate"); err != nil {
		return Filter{}, err
	}
	if f.EndDate, err = parseDateKey(raw, "endDate"); err != nil {
		return Filter{}, err
	}

	switch {
	case f.StartDate != nil && f.EndDate == nil:
		return Filter{}, apperror.Filter("endDate", "wajib diisi bersama startDate")
	case f.StartDate == nil && f.EndDate != nil:
		return Filter{}, apperror.Filter("startDate", "wajib diisi bersama endDate")
	case f.HasRange() && time.Time(*f.StartDate).After(time.Time(*f.EndDate)):
		return Filter{}, apperror.Filter("startDate", "tidak boleh setelah endDate")
	}
	return f, nil
}
