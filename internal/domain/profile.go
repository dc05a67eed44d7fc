package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile 每个身份恰好一条；首次访问受保护接口时懒创建，默认 role=user
type Profile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"size:191;not null" json:"email"`
	FullName  string    `gorm:"size:128" json:"full_name"`
	Role      string    `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) IsAdmin() bool { return p.Role == RoleAdmin }

type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
	// UpdateRole 找不到行时返回 ErrProfileNotFound
	UpdateRole(ctx context.Context, id, role string) error
	List(ctx context.Context, q string, offset, limit int) ([]Profile, int64, error)
}
