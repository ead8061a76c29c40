package model

// Principal is the authenticated caller of the admin endpoints.
type Principal struct {
	UserID string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == "ADMIN"
}
