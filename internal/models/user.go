package models

const (
	AdminRole   = "admin"
	TeacherRole = "teacher"
	StudentRole = "student"
)

// ActingUser is the authenticated caller as described by the access token.
type ActingUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func ValidRole(role string) bool {
	switch role {
	case AdminRole, TeacherRole, StudentRole:
		return true
	}
	return false
}

func (u ActingUser) CanViewAllVideos() bool {
	return u.Role == AdminRole
}

func (u ActingUser) CanAddVideo() bool {
	return u.Role == AdminRole || u.Role == TeacherRole
}
