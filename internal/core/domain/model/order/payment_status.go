package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus is recorded on the order only. No payment logic runs here.
type PaymentStatus int

const (
	UnknownPayment PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPayment:  "unknown",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentFailed:   "failed",
		PaymentRefunded: "refunded",
	}
}

func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[p]; !ok || p == UnknownPayment {
		return errs.NewValueIsInvalidErrorWithCause("payment_status", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if status != UnknownPayment && name == s {
			return status, nil
		}
	}
	return UnknownPayment, errs.NewValueIsInvalidErrorWithCause("payment_status",
		fmt.Errorf("%q is not a valid payment status", s))
}
