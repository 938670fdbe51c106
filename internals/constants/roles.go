package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleCR      = "cr"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Template pesan error role
const (
	ErrOnlyStaffCanAccess  = "Hanya admin, CR, atau teacher yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess = "Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleCR,
		RoleTeacher,
		RoleStudent,
	}

	// boleh menandai absensi & import siswa
	MarkerRoles = []string{
		RoleAdmin,
		RoleCR,
		RoleTeacher,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
