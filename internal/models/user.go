package models

import "time"

type Role string

const (
	RoleUser   Role = "USER"
	RoleVendor Role = "VENDOR"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleVendor
}

type User struct {
	ID           int64
	Name         string
	Mobile       string
	Email        string
	Role         Role
	PasswordHash string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsActiveVendor() bool {
	return u.Role == RoleVendor && u.Status.IsActive()
}

type CreateUserRequest struct {
	Name     string
	Mobile   string
	Email    string
	Password string
	Role     Role
}

type CreateUserParams struct {
	Name         string
	Mobile       string
	Email        string
	Role         Role
	PasswordHash string
}

type ListUsersResult struct {
	Users []*User
	Page  PageInfo
}
