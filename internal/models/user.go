package models

import "encoding/json"

type User struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
)

// ParseRole maps a submitted or stored role to a known role. The short
// codes "c" and "s" are what older users.json files contain.
func ParseRole(s string) (UserRole, bool) {
	switch s {
	case "customer", "c":
		return RoleCustomer, true
	case "staff", "s":
		return RoleStaff, true
	}
	return "", false
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if role, ok := ParseRole(s); ok {
		*r = role
		return nil
	}
	*r = UserRole(s)
	return nil
}
