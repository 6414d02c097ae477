// Package nav decides where the user is allowed to be. It holds the current
// location, the role guards for each section, and the coordinator that turns
// an expired session into a trip to the login page.
package nav

import (
	"strings"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/domain"
)

const (
	PathHome            = "/"
	PathLogin           = "/login"
	PathRegisterDoctor  = "/register/doctor"
	PathRegisterClinic  = "/register/clinic"
	PathJobs            = "/jobs"
	PathDashboard       = "/dashboard"
	PathDoctorDashboard = "/doctor/dashboard"
	PathDoctorProfile   = "/doctor/profile"
	PathClinicDashboard = "/clinic/dashboard"
	PathClinicProfile   = "/clinic/profile"
	PathAdminDashboard  = "/admin/dashboard"
)

// DashboardPath maps a session to its section's landing page, or to the
// login page when nobody is signed in.
func DashboardPath(s *domain.Session) string {
	if s == nil {
		return PathLogin
	}
	switch s.Role {
	case domain.RoleDoctor:
		return PathDoctorDashboard
	case domain.RoleClinic:
		return PathClinicDashboard
	case domain.RoleSuperadmin:
		return PathAdminDashboard
	}
	return PathLogin
}

// Section is a role-scoped subtree of pages.
type Section struct {
	Prefix string
	Guard  Guard
}

// Sections lists the protected subtrees.
var Sections = []Section{
	{Prefix: "/doctor", Guard: Guard{Role: domain.RoleDoctor}},
	{Prefix: "/clinic", Guard: Guard{Role: domain.RoleClinic}},
	{Prefix: "/admin", Guard: Guard{Role: domain.RoleSuperadmin}},
}

// SectionFor returns the section containing path.
func SectionFor(path string) (Section, bool) {
	for _, s := range Sections {
		if path == s.Prefix || strings.HasPrefix(path, s.Prefix+"/") {
			return s, true
		}
	}
	return Section{}, false
}
