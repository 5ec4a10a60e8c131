package domain

import "time"

// AdminUser is the single writer account. The password hash never leaves the
// store layer; handlers only ever see ID and Username.
type AdminUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() []FieldError {
	var errs []FieldError
	if len(c.Username) == 0 {
		errs = append(errs, FieldError{Field: "username", Message: "Username is required"})
	}
	if len(c.Password) == 0 {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}
