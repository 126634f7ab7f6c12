package user

import (
	"errors"
	"time"
)

var ErrEmailTaken = errors.New("user with this email already exists")

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Deleted      bool      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

func (p *CreateUserParams) Validate() error {
	if p.Name == "" || p.Email == "" || p.PasswordHash == "" {
		return errors.New("name, email, and password are required")
	}
	return nil
}
