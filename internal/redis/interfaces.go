package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking
// around ledger operations.
type LockStoreInterface interface {
	AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error)
	ReleaseBookingLock(ctx context.Context, bookingID string) error
	AcquireTransactionLock(ctx context.Context, transactionID string, ttl time.Duration) (bool, error)
	ReleaseTransactionLock(ctx context.Context, transactionID string) error
}

// HelicopterCacheInterface defines the read-through cache used for fleet
// lookups on the booking path.
type HelicopterCacheInterface interface {
	GetHelicopter(ctx context.Context, id string) (*CachedHelicopter, error)
	SetHelicopter(ctx context.Context, h *CachedHelicopter) error
	InvalidateHelicopter(ctx context.Context, id string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface       = (*LockStore)(nil)
	_ HelicopterCacheInterface = (*CacheStore)(nil)
)
