package queries

import (
	"context"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/core/domain/services"
)

// adminRegion resolves the region filter of a region-scoped read by an admin.
// Regular admins default to their own region and may not ask for another one.
// Super admins get what they asked for; nil means every region.
func adminRegion(
	policy services.AccessPolicy,
	admin profile.Admin,
	action services.Action,
	requested *kernel.UUID,
) (*kernel.UUID, error) {
	if admin.IsSuper() {
		return requested, nil
	}
	if requested == nil {
		requested = admin.Region
	}
	if err := policy.Authorize(admin, action, services.RegionTarget(requested)); err != nil {
		return nil, err
	}
	return requested, nil
}

// where collects SQL conditions with their arguments.
type where struct {
	conditions []string
	args       []any
}

func (w *where) add(condition string, args ...any) {
	w.conditions = append(w.conditions, condition)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

// boundRead applies the store operation timeout to a whole read, row scanning
// included. A zero timeout keeps the caller's deadline.
func boundRead(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
