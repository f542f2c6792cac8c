package models

// Identity is the caller bound to one authenticated request: the raw bearer
// token and the user it resolved to. It lives only for the duration of the
// request and is passed explicitly into every policy decision.
type Identity struct {
	Token string
	User  *User
}

// IsAdmin reports whether the bound user is an administrator
func (i *Identity) IsAdmin() bool {
	return i != nil && i.User.IsAdmin()
}

// UserID returns the bound user's id, or 0 for a nil identity
func (i *Identity) UserID() int {
	if i == nil || i.User == nil {
		return 0
	}
	return i.User.ID
}
