package model

import "github.com/google/uuid"

type Role string

const (
	RoleParent   Role = "parent"
	RoleEducator Role = "educator"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Principal is the authenticated operator extracted from the access token.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsParent() bool   { return p.Role == RoleParent }
func (p Principal) IsEducator() bool { return p.Role == RoleEducator }
func (p Principal) IsManager() bool  { return p.Role == RoleManager }
func (p Principal) IsAdmin() bool    { return p.Role == RoleAdmin }

// CanManage reports whether the principal may use the back office.
func (p Principal) CanManage() bool { return p.IsManager() || p.IsAdmin() }
