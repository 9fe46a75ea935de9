package objectstore

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/aurumdent/goldbuy/internal/config"
)

// Module exposes the image store implementation to fx graph.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (Store, *DiskStore, error) {
	store, err := NewDiskStore(p.Config.ImageDir, p.Config.ImageBaseURL, p.Logger)
	if err != nil {
		return nil, nil, err
	}
	return store, store, nil
}
