// README: Preference keys, defaults and the key/value store contract shared by Redis and memory backends.
package prefs

import (
	"context"
	"errors"
)

// Keys are kept identical to the widget's browser storage keys so exported
// data lines up with what the front end already writes.
const (
	KeyTripType = "wr_tripType"
	KeyPickup   = "wr_pickup"
	KeyRevenue  = "wr_revenue"
	KeySurge    = "wr_surge"

	DefaultTripType       = "nagpur"
	DefaultPickup         = "Hostel"
	DefaultRevenue  int64 = 15400
)

var ErrNotFound = errors.New("preference not set")

// Store is a flat string key/value store. Get returns ErrNotFound for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetNX(ctx context.Context, key, value string) (bool, error)
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)
}
