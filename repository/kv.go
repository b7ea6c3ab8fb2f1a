package repository

import "context"

// KeyValueStore is the durable slot storage every state container writes through.
// Load returns domain.ErrSnapshotNotFound when the key has never been written.
type KeyValueStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// Pinger is implemented by stores that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
