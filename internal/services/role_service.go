package services

import (
	"context"
	"errors"

	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"go.uber.org/zap"
)

// RoleInvalidator drops cached role definitions
type RoleInvalidator interface {
	Invalidate()
}

// RoleService manages target roles and benchmarks. Reads of active roles go
// through the cache; every write invalidates it.
type RoleService struct {
	roles repository.RoleStore
	cache RoleProvider
	inval RoleInvalidator
}

func NewRoleService(roles repository.RoleStore, cache RoleProvider, inval RoleInvalidator) *RoleService {
	return &RoleService{roles: roles, cache: cache, inval: inval}
}

// ListActive is the public role list
func (s *RoleService) ListActive(ctx context.Context) ([]*models.Role, error) {
	return s.cache.ListActive(ctx)
}

// ListAll includes inactive roles and bypasses the cache
func (s *RoleService) ListAll(ctx context.Context) ([]*models.Role, error) {
	return s.roles.List(ctx, false)
}

func (s *RoleService) Get(ctx context.Context, id string) (*models.Role, error) {
	return s.cache.Get(ctx, id)
}

func (s *RoleService) Create(ctx context.Context, req *models.RoleRequest) (*models.Role, error) {
	if err := models.ValidateBenchmarks(req.Benchmarks); err != nil {
		return nil, err
	}

	role, err := s.roles.Create(ctx, req)
	if err != nil {
		return nil, roleWriteError(err)
	}
	s.inval.Invalidate()

	logger.Info("Role created", zap.String("role_id", role.ID), zap.String("name", role.Name))
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, id string, req *models.RoleRequest) (*models.Role, error) {
	if req.Benchmarks != nil {
		if err := models.ValidateBenchmarks(req.Benchmarks); err != nil {
			return nil, err
		}
	}

	role, err := s.roles.Update(ctx, id, req)
	if err != nil {
		return nil, roleWriteError(err)
	}
	s.inval.Invalidate()

	logger.Info("Role updated", zap.String("role_id", id))
	return role, nil
}

// ReplaceBenchmarks swaps the full benchmark set. The total weight may not
// exceed models.MaxTotalBenchmarkWeight.
func (s *RoleService) ReplaceBenchmarks(ctx context.Context, id string, benchmarks []models.Benchmark) (*models.Role, error) {
	if benchmarks == nil {
		benchmarks = []models.Benchmark{}
	}
	if err := models.ValidateBenchmarks(benchmarks); err != nil {
		return nil, err
	}

	role, err := s.roles.ReplaceBenchmarks(ctx, id, benchmarks)
	if err != nil {
		return nil, roleWriteError(err)
	}
	s.inval.Invalidate()

	logger.Info("Role benchmarks replaced",
		zap.String("role_id", id),
		zap.Int("benchmarks", len(benchmarks)),
		zap.Int("total_weight", role.TotalWeight()))
	return role, nil
}

func (s *RoleService) Delete(ctx context.Context, id string) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		return err
	}
	s.inval.Invalidate()

	logger.Info("Role deleted", zap.String("role_id", id))
	return nil
}

func roleWriteError(err error) error {
	if errors.Is(err, apperrors.ErrConflict) {
		return apperrors.ConflictError("a role with this name already exists")
	}
	if errors.Is(err, apperrors.ErrInvalidInput) {
		return apperrors.InvalidInputError("benchmarks", "unknown skill")
	}
	return err
}
