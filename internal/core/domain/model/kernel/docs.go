// Package kernel holds the value objects shared by every aggregate of the
// fulfillment domain: identifiers, delivery coordinates and the clock used to
// stamp lifecycle timestamps.
package kernel
