package service

import "musify/internal/microservices/http-api/models"

// Identity is the verified caller taken from a bearer token.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// CanManageUser reports whether the caller may change or delete the given account.
func (i Identity) CanManageUser(userID string) bool {
	return i.UserID == userID || i.IsAdmin()
}
