package enum

// UserRole represents the access level of a console operator
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleOperator UserRole = "operator"
)

// IsValid checks if the role is a known value
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleOperator
}

func (r UserRole) String() string {
	return string(r)
}
