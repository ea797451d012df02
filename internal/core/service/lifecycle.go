package service

import (
	"context"
	"errors"

	"github.com/albaranes/deliverynotes-api/internal/api/metrics"
	"github.com/albaranes/deliverynotes-api/internal/core/domain"
	"github.com/albaranes/deliverynotes-api/internal/core/ports"
)

// remove soft-deletes or purges a record. A miss is reported as notFound so
// callers get the entity-specific error.
func remove(ctx context.Context, lc ports.Lifecycle, entity, ownerID, id string, soft bool, notFound error) error {
	action := "hard_delete"
	var err error
	if soft {
		action = "soft_delete"
		err = lc.MarkDeleted(ctx, ownerID, id)
	} else {
		err = lc.Purge(ctx, ownerID, id)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound
		}
		return err
	}
	metrics.LifecycleTotal.WithLabelValues(entity, action).Inc()
	return nil
}

func restore(ctx context.Context, lc ports.Lifecycle, entity, ownerID, id string) error {
	if err := lc.Restore(ctx, ownerID, id); err != nil {
		return err
	}
	metrics.LifecycleTotal.WithLabelValues(entity, "restore").Inc()
	return nil
}
