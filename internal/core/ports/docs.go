// Package ports declares the contracts the application core needs from the
// outside world: persistence behind a unit of work, identity, object storage,
// event delivery and cart session storage.
package ports
