package profile

import (
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// KYCStatus is the know-your-customer review state.
//
//	pending ──> approved <──> rejected <── pending
type KYCStatus int

const (
	UnknownKYC KYCStatus = iota
	KYCPending
	KYCApproved
	KYCRejected
)

func getKYCStrings() map[KYCStatus]string {
	return map[KYCStatus]string{
		UnknownKYC:  "unknown",
		KYCPending:  "pending",
		KYCApproved: "approved",
		KYCRejected: "rejected",
	}
}

func (s KYCStatus) String() string {
	if str, ok := getKYCStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func ParseKYCStatus(s string) (KYCStatus, error) {
	for status, name := range getKYCStrings() {
		if status != UnknownKYC && name == s {
			return status, nil
		}
	}
	return UnknownKYC, errs.NewValueIsInvalidErrorWithCause("kyc_status", fmt.Errorf("%q is not a valid KYC status", s))
}

// KYC is the review state plus the metadata of the last decision.
type KYC struct {
	Status          KYCStatus
	RejectionReason string
	DecidedAt       *time.Time
	DecidedBy       *kernel.UUID
}

func (k KYC) Validate() error {
	switch k.Status {
	case KYCPending, KYCApproved:
		if k.RejectionReason != "" {
			return errs.NewValueIsInvalidErrorWithCause("kyc_rejection_reason",
				fmt.Errorf("reason must be empty while status is %s", k.Status))
		}
	case KYCRejected:
		if strings.TrimSpace(k.RejectionReason) == "" {
			return errs.NewValueIsRequiredError("kyc_rejection_reason")
		}
	case UnknownKYC:
		return errs.NewValueIsInvalidError("kyc_status")
	default:
		return errs.NewValueIsInvalidError("kyc_status")
	}
	return nil
}

// decide applies an approve or reject decision. Any current state may be
// re-decided; each decision re-stamps the decider and time.
func (k KYC) decide(decision KYCStatus, reason string, decidedBy kernel.UUID, at time.Time) (KYC, error) {
	if err := decidedBy.Validate(); err != nil {
		return k, err
	}

	next := KYC{Status: decision, DecidedAt: &at, DecidedBy: &decidedBy}
	switch decision {
	case KYCApproved:
	case KYCRejected:
		next.RejectionReason = strings.TrimSpace(reason)
	case UnknownKYC, KYCPending:
		return k, errs.NewValueIsInvalidErrorWithCause("kyc_decision",
			fmt.Errorf("%s is not a decision", decision))
	default:
		return k, errs.NewValueIsInvalidError("kyc_decision")
	}

	if err := next.Validate(); err != nil {
		return k, err
	}
	return next, nil
}
