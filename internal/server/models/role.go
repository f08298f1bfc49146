package models

import "github.com/schoolcloud/identity/internal/common"

// Role is the fixed set of groups a user can belong to. It is validated at
// every mutation point; an unchecked string never reaches the record store.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole validates s against the role enum. The empty string is not a
// valid role; callers wanting a default should apply it before parsing.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(s), nil
	}
	return "", common.ErrorValidation
}

func (r Role) String() string { return string(r) }
