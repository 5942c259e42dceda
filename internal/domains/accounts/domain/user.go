package domain

import (
	"errors"
	"strings"
)

// UserType distinguishes the two account roles.
type UserType string

const (
	TypeCustomer UserType = "customer"
	TypeVendor   UserType = "vendor"
)

var (
	ErrEmptyUsername   = errors.New("username is required")
	ErrEmptyName       = errors.New("display name is required")
	ErrInvalidUserType = errors.New("user type must be customer or vendor")
)

// User represents a customer or vendor account. The username is derived
// from the authenticated email's local part by the identity boundary.
type User struct {
	ID       int64
	Username string
	Name     string
	Phone    string
	Type     UserType
	AreaID   *int64
}

// NewUser builds a user ensuring required invariants. The type is fixed at
// creation; no update path changes it afterwards.
func NewUser(id int64, username, name string, userType UserType) (*User, error) {
	user := &User{ID: id, Type: userType}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.Rename(name); err != nil {
		return nil, err
	}
	if !isValidUserType(userType) {
		return nil, ErrInvalidUserType
	}
	return user, nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// Rename trims and validates the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// UpdatePhone stores the trimmed phone number.
func (u *User) UpdatePhone(phone string) {
	u.Phone = strings.TrimSpace(phone)
}

// AssignArea points the account at a service area; nil clears it.
func (u *User) AssignArea(areaID *int64) {
	u.AreaID = areaID
}

// IsVendor reports whether the account may own inventory and areas.
func (u *User) IsVendor() bool {
	return u.Type == TypeVendor
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	if err := u.Rename(u.Name); err != nil {
		return err
	}
	if !isValidUserType(u.Type) {
		return ErrInvalidUserType
	}
	return nil
}

func isValidUserType(t UserType) bool {
	switch t {
	case TypeCustomer, TypeVendor:
		return true
	default:
		return false
	}
}

// LocalPart extracts the username portion of an authenticated email
// address, mirroring the identity provider mapping convention.
func LocalPart(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
