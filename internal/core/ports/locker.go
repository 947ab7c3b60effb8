package ports

import "context"

// AdmissionLocker serializes admission checks that target the same
// reservation date, so two concurrent requests cannot both pass the
// availability sum and overbook the restaurant.
type AdmissionLocker interface {
	// Lock blocks until the lease for date is acquired, ctx is cancelled, or
	// the implementation's retry budget runs out. The returned release
	// function must always be called.
	Lock(ctx context.Context, date string) (release func(), err error)
}
