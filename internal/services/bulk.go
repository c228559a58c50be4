package services

import (
	"context"
	"fmt"

	"github.com/roleready/roleready-api/internal/models"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/listquery"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
)

// runBulk validates a bulk request and applies fn to each ID on its own.
// One failing ID never stops the rest.
func runBulk(ctx context.Context, resource string, req *models.BulkActionRequest, allowed map[models.BulkAction]bool, fn func(ctx context.Context, id string) error) (*models.BulkActionResult, error) {
	if !allowed[req.Action] {
		return nil, apperrors.InvalidInputError("action", fmt.Sprintf("unsupported action %q", req.Action))
	}

	ids, err := listquery.NormalizeIDs(req.IDs, models.MaxBulkItems)
	if err != nil {
		return nil, apperrors.InvalidInputError("ids", err.Error())
	}

	result := &models.BulkActionResult{
		Action:  req.Action,
		Results: make([]models.BulkItemResult, 0, len(ids)),
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			result.Add(id, err)
			continue
		}

		err := fn(ctx, id)
		status := "success"
		if err != nil {
			status = "failed"
		}
		metrics.BulkActionItems.WithLabelValues(resource, string(req.Action), status).Inc()
		result.Add(id, err)
	}

	logger.Info("Bulk action applied",
		zap.String("resource", resource),
		zap.String("action", string(req.Action)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))
	return result, nil
}
