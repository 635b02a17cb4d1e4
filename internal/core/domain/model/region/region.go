// Package region models the named partitions that scope catalogs, admins and deliveries.
// Regions are never deleted; only the active flag changes after creation.
package region

import (
	"errors"
	"regexp"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrRegionIsNotConstructed = errors.New("Region must be created via NewRegion constructor")

	codePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{0,15}$`)
)

type Region struct {
	id       kernel.UUID
	name     string
	code     string
	isActive bool

	isConstructed bool
}

// NewRegion creates an active region. The code is upper-cased.
func NewRegion(id kernel.UUID, name, code string) (*Region, error) {
	r := &Region{isActive: true, isConstructed: true}

	if err := errors.Join(r.setID(id), r.setName(name), r.setCode(code)); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreRegion rebuilds a region from storage.
func RestoreRegion(id kernel.UUID, name, code string, isActive bool) (*Region, error) {
	r, err := NewRegion(id, name, code)
	if err != nil {
		return nil, err
	}
	r.isActive = isActive
	return r, nil
}

func (r *Region) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRegionIsNotConstructed
	}
	return nil
}

func (r *Region) ID() kernel.UUID {
	return r.id
}

func (r *Region) Name() string {
	return r.name
}

func (r *Region) Code() string {
	return r.code
}

func (r *Region) IsActive() bool {
	return r.isActive
}

func (r *Region) Activate() {
	r.isActive = true
}

func (r *Region) Deactivate() {
	r.isActive = false
}

func (r *Region) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Region) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Region) setCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	if !codePattern.MatchString(code) {
		return errs.NewValueIsInvalidError("code")
	}
	r.code = code
	return nil
}
