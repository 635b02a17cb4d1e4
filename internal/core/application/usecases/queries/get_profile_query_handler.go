package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetProfileQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGetProfileQueryHandler(db *gorm.DB, timeout time.Duration) GetProfileQueryHandler {
	return GetProfileQueryHandler{db: db, timeout: timeout}
}

func (h GetProfileQueryHandler) Handle(ctx context.Context, query GetProfileQuery) (ProfileView, error) {
	ctx, cancel := boundRead(ctx, h.timeout)
	defer cancel()

	if err := query.Validate(); err != nil {
		return ProfileView{}, err
	}
	if query.actor == nil {
		return ProfileView{}, errs.NewUnauthorizedError("profile:view")
	}
	actorID := query.actor.ActorID()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, full_name, email, role, admin_tier, region_id,
			kyc_status, kyc_rejection_reason, kyc_decided_at, created_at
		FROM profiles
		WHERE id = ?
	`, actorID.Bytes()).Rows()
	if err != nil {
		return ProfileView{}, errs.WrapDependency("postgres", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ProfileView{}, errs.WrapDependency("postgres", err)
		}
		return ProfileView{}, errs.NewObjectNotFoundError("profile", actorID.String())
	}

	var view ProfileView
	var id uuid.UUID
	var regionID uuid.NullUUID
	var decidedAt *time.Time
	if err = rows.Scan(&id, &view.FullName, &view.Email, &view.Role, &view.AdminRole, &regionID,
		&view.KYCStatus, &view.KYCRejectionReason, &decidedAt, &view.CreatedAt); err != nil {
		return ProfileView{}, err
	}
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ProfileView{}, err
	}
	if view.RegionID, err = optionalUUID(regionID); err != nil {
		return ProfileView{}, err
	}
	view.KYCDecidedAt = decidedAt

	return view, nil
}

func optionalUUID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil //nolint:nilnil // absent column value
	}
	id, err := kernel.UUIDFromBytes(raw.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
