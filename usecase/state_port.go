package usecase

import "context"

// StateStore abstracts snapshot persistence so state containers stay storage-agnostic.
// LoadState reports found=false when nothing was stored under key.
type StateStore interface {
	LoadState(ctx context.Context, kind, key string, dst interface{}) (found bool, err error)
	SaveState(ctx context.Context, kind, key string, state interface{}) error
}
