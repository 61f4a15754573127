package internal

type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// Session is the caller identity established by a successful login.
// A nil *Session means the caller is not logged in.
type Session struct {
	AccountID int64  `json:"account_id"`
	Role      Role   `json:"role"`
	TokenID   string `json:"-"`
}

// Require is the role gate every route and workflow method passes through.
func (s *Session) Require(roles ...Role) error {
	if s == nil || s.AccountID == 0 || !s.Role.Valid() {
		return ErrUnauthenticated
	}
	for _, r := range roles {
		if s.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

func (s *Session) Is(role Role) bool {
	return s != nil && s.Role == role
}

// Owns reports whether the session is the given role acting on its own account.
func (s *Session) Owns(role Role, accountID int64) bool {
	return s.Is(role) && s.AccountID == accountID
}
