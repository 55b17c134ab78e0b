package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/authz"
	"github.com/silsila-idreesia/portal/internal/db/models"
)

// Service answers authorization questions against the database.
// It loads users with their role assignments and delegates the actual
// resolution to the pure authz package.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// LoadUser fetches a user with the role and permission data the resolver
// needs. Both the single role and the multi-role list are preloaded.
func (s *Service) LoadUser(userID uint64) (*models.User, error) {
	var user models.User

	err := s.db.
		Preload("Role.Permissions").
		Preload("Roles.Permissions").
		First(&user, userID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	return &user, nil
}

// HasPermission checks if a user has a specific permission.
func (s *Service) HasPermission(userID uint64, permission string) (bool, error) {
	user, err := s.LoadUser(userID)
	if err != nil {
		return false, err
	}

	return authz.HasPermission(user, permission), nil
}

// HasAnyPermission checks if a user has at least one of the given permissions.
func (s *Service) HasAnyPermission(userID uint64, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return false, nil
	}

	user, err := s.LoadUser(userID)
	if err != nil {
		return false, err
	}

	return authz.HasPermission(user, permissions...), nil
}

// HasAllPermissions checks if a user has all of the given permissions.
func (s *Service) HasAllPermissions(userID uint64, permissions []string) (bool, error) {
	user, err := s.LoadUser(userID)
	if err != nil {
		return false, err
	}

	return authz.HasAllPermissions(user, permissions), nil
}

// GetUserPermissions retrieves all effective permission names for a user.
func (s *Service) GetUserPermissions(userID uint64) ([]string, error) {
	user, err := s.LoadUser(userID)
	if err != nil {
		return nil, err
	}

	set := authz.Permissions(user)

	result := make([]string, 0, len(set))
	for perm := range set {
		result = append(result, perm)
	}

	return result, nil
}

// EnsurePermissions creates any missing permission records for the given
// names. Used at seed time to materialize the permission catalog.
func (s *Service) EnsurePermissions(names []string) error {
	for _, name := range names {
		var perm models.Permission

		err := s.db.Where("name = ?", name).
			FirstOrCreate(&perm, models.Permission{Name: name, Guard: "api"}).Error
		if err != nil {
			return fmt.Errorf("failed to ensure permission %q: %w", name, err)
		}
	}

	return nil
}

// AssignRoleToUser sets a user's single role assignment.
func (s *Service) AssignRoleToUser(userID uint64, roleID uint) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("role_id", roleID).Error
}

// SyncUserRoles replaces a user's multi-role assignment with the given
// role IDs inside one transaction.
func (s *Service) SyncUserRoles(userID uint64, roleIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("failed to remove old role assignments: %w", err)
		}

		for _, roleID := range roleIDs {
			if err := tx.Create(&models.UserRole{
				UserID: userID,
				RoleID: roleID,
			}).Error; err != nil {
				return fmt.Errorf("failed to assign role %d: %w", roleID, err)
			}
		}

		return nil
	})
}

// SyncRolePermissions replaces a role's permission set with the named
// permissions, creating missing permission records on the fly.
func (s *Service) SyncRolePermissions(roleID uint, permissionNames []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).
			Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("failed to clear role permissions: %w", err)
		}

		for _, name := range permissionNames {
			var perm models.Permission

			err := tx.Where("name = ?", name).
				FirstOrCreate(&perm, models.Permission{Name: name, Guard: "api"}).Error
			if err != nil {
				return fmt.Errorf("failed to ensure permission %q: %w", name, err)
			}

			if err := tx.Create(&models.RolePermission{
				RoleID:       roleID,
				PermissionID: perm.ID,
			}).Error; err != nil {
				return fmt.Errorf("failed to attach permission %q: %w", name, err)
			}
		}

		return nil
	})
}
