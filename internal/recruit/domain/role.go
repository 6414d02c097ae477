package domain

import (
	"fmt"
	"strings"
)

// Role decides which section of the app a user may enter. It is fixed at
// registration.
type Role string

const (
	RoleDoctor     Role = "doctor"
	RoleClinic     Role = "clinic"
	RoleSuperadmin Role = "superadmin"
)

// IsValid reports whether r is one of the three known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleDoctor, RoleClinic, RoleSuperadmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
