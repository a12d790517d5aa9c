package constants

// User role
const (
	RoleGuest = 0
	RoleStaff = 1
	RoleOwner = 2
)

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)
