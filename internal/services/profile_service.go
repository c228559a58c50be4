package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/storage"
	"go.uber.org/zap"
)

//go:embed schemas/profile.schema.json
var profileSchemaJSON []byte

// AvatarStore is the object storage used for profile pictures
type AvatarStore interface {
	storage.ObjectStore
	KeyForURL(url string) (string, bool)
}

// RoleProvider reads role definitions, normally through the role cache
type RoleProvider interface {
	Get(ctx context.Context, id string) (*models.Role, error)
	ListActive(ctx context.Context) ([]*models.Role, error)
}

// ProfileService handles the caller's own profile
type ProfileService struct {
	users   repository.UserStore
	roles   RoleProvider
	avatars AvatarStore
	schema  *jsonschema.Schema
}

// NewProfileService compiles the embedded profile schema
func NewProfileService(users repository.UserStore, roles RoleProvider, avatars AvatarStore) (*ProfileService, error) {
	schema := &jsonschema.Schema{}
	if err := json.Unmarshal(profileSchemaJSON, schema); err != nil {
		return nil, fmt.Errorf("failed to load profile schema: %w", err)
	}

	return &ProfileService{
		users:   users,
		roles:   roles,
		avatars: avatars,
		schema:  schema,
	}, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile validates the profile document and stores it with the name
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := s.ValidateProfile(ctx, req.Profile); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, userID, strings.TrimSpace(req.Name), req.Profile)
	if err != nil {
		logger.Error("Failed to update profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	logger.Info("Profile updated", zap.String("user_id", userID))
	return user, nil
}

// ValidateProfile checks the profile document against the JSON schema
func (s *ProfileService) ValidateProfile(ctx context.Context, profile models.Profile) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	keyErrs, err := s.schema.ValidateBytes(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to validate profile: %w", err)
	}
	if len(keyErrs) > 0 {
		first := keyErrs[0]
		field := "profile" + strings.ReplaceAll(first.PropertyPath, "/", ".")
		return apperrors.InvalidInputError(field, first.Message)
	}
	return nil
}

// SetTargetRole sets or clears (nil) the role readiness is computed against
func (s *ProfileService) SetTargetRole(ctx context.Context, userID string, roleID *string) (*models.User, error) {
	if roleID != nil {
		role, err := s.roles.Get(ctx, *roleID)
		if err != nil {
			return nil, err
		}
		if !role.IsActive {
			return nil, apperrors.InvalidInputError("roleId", "role is not active")
		}
	}

	if err := s.users.SetTargetRole(ctx, userID, roleID); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// UploadAvatar stores a new profile picture and removes the previous one
func (s *ProfileService) UploadAvatar(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	ext, err := storage.ImageExtension(contentType)
	if err != nil {
		return "", apperrors.InvalidInputError("file", err.Error())
	}
	if err := storage.ValidateImageSize(len(data)); err != nil {
		return "", apperrors.InvalidInputError("file", err.Error())
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.avatars.Upload(ctx, storage.AvatarKey(userID, ext), data, contentType)
	if err != nil {
		if errors.Is(err, storage.ErrStorageDisabled) {
			return "", err
		}
		logger.Error("Failed to upload avatar", zap.String("user_id", userID), zap.Error(err))
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.users.SetAvatar(ctx, userID, url); err != nil {
		return "", err
	}

	if oldKey, ok := s.avatars.KeyForURL(user.AvatarURL); ok && user.AvatarURL != url {
		if err := s.avatars.Delete(ctx, oldKey); err != nil {
			logger.Warn("Failed to delete previous avatar", zap.String("key", oldKey), zap.Error(err))
		}
	}

	logger.Info("Avatar updated", zap.String("user_id", userID))
	return url, nil
}
