package authorization

// UserRole is the role carried in an access token.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// ParseUserRole falls back to RoleCustomer for unknown values.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleCustomer
}

// CanAccessResourceByOwnerID reports whether the caller may act on a resource
// owned by ownerID. Admins may act on any user's resources.
func CanAccessResourceByOwnerID(userID uint, role UserRole, ownerID uint) bool {
	if role.IsAdmin() {
		return true
	}
	return userID != 0 && userID == ownerID
}
