package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pushup-club/internal/model"

	"gorm.io/gorm"
)

var ErrBlankName = errors.New("name is required")

// AuthService implements name-based login: the first login with a new name
// creates the member. The configured admin allowlist is projected onto the
// member's role column, so authorization checks read the store, not config.
type AuthService struct {
	db     *gorm.DB
	admins map[string]bool
}

func NewAuthService(db *gorm.DB, adminNames []string) *AuthService {
	admins := make(map[string]bool, len(adminNames))
	for _, name := range adminNames {
		admins[name] = true
	}
	return &AuthService{db: db, admins: admins}
}

func (s *AuthService) LoginByName(ctx context.Context, name string) (*model.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	role := model.RoleMember
	if s.admins[name] {
		role = model.RoleAdmin
	}

	var m model.Member
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = model.Member{Name: name, Role: role}
		if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
			return nil, fmt.Errorf("create member: %w", err)
		}
		return &m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query member: %w", err)
	}

	// allowlist changes take effect on the next login
	if m.Role != role {
		if err := s.db.WithContext(ctx).Model(&m).Update("role", role).Error; err != nil {
			return nil, fmt.Errorf("update role: %w", err)
		}
		m.Role = role
	}
	return &m, nil
}
