// Command feedctl inspects and manages the persisted feed and order blobs
// of the configured storage backend.
package main

import (
	"context"
	"os"

	"greenpatch/internal/config"
	"greenpatch/internal/storage"
)

func main() {
	open := func(ctx context.Context) (storage.KV, error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		return storage.Open(ctx, cfg.Storage)
	}
	if err := newRootCmd(open).Execute(); err != nil {
		os.Exit(1)
	}
}
