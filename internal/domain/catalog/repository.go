package catalog

import "context"

// Repository defines the operations shared by every reference catalog.
// The privileged flag is threaded explicitly from the handler: non-privileged
// callers only ever see active entries.
type Repository interface {
	List(ctx context.Context, filter *Filter, privileged bool) ([]*Entry, error)
	GetByID(ctx context.Context, id uint, privileged bool) (*Entry, error)
	GetByCode(ctx context.Context, code string) (*Entry, error)
	Create(ctx context.Context, entry *Entry) error
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id uint) error
}
