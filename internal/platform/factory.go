package platform

import (
	"context"

	"github.com/aretw0/scrawl/pkg/core"
)

// New opens the notebook at uri and loads it.
//
//	store, err := scrawl.New("~/notes.json", scrawl.WithAdapter("fs"))
//
// The URI argument is adapter-specific (file path for "fs", database file for
// "sqlite", ignored by "memory").
func New(uri string, opts ...Option) (*core.Store, error) {
	return NewContext(context.Background(), uri, opts...)
}

// NewContext is New with a caller supplied context for the initial I/O.
func NewContext(ctx context.Context, uri string, opts ...Option) (*core.Store, error) {
	slot, o, err := open(ctx, uri, opts...)
	if err != nil {
		return nil, err
	}

	storeOpts := []core.StoreOption{core.WithLogger(o.logger)}
	if o.codec != nil {
		storeOpts = append(storeOpts, core.WithCodec(o.codec))
	} else if o.adapter == "fs" && o.slot == nil {
		storeOpts = append(storeOpts, core.WithCodec(CodecFor(uri)))
	}
	storeOpts = append(storeOpts, o.store...)

	store := core.NewStore(slot, storeOpts...)
	if err := store.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
