package domain

// Role is the office-wide role of a user.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// SeesAllTasks reports whether the role bypasses per-assignee task visibility.
func (r Role) SeesAllTasks() bool {
	return r == RoleAdmin || r == RoleManager
}

// User represents a member of the accounting office.
type User struct {
	UserID       int64   `json:"userID"`
	Email        string  `json:"email"`
	Name         *string `json:"name,omitempty"`
	Role         Role    `json:"role"`
	PasswordHash *string `json:"-"`
	AuditFields
}

// DisplayName returns the name when set, falling back to the email.
func (u User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}

// ClientUser is a user linked to a client, in assignment order.
type ClientUser struct {
	ClientID int64 `json:"clientID"`
	User
}

// PickAssignee returns the first USER, else the first MANAGER, among the
// client's assigned users. The boolean is false when neither exists.
func PickAssignee(users []ClientUser) (ClientUser, bool) {
	for _, u := range users {
		if u.Role == RoleUser {
			return u, true
		}
	}
	for _, u := range users {
		if u.Role == RoleManager {
			return u, true
		}
	}
	return ClientUser{}, false
}
