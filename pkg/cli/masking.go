package cli

import (
	"context"
	"fmt"

	"github.com/codeready-toolchain/logshield/pkg/config"
	"github.com/codeready-toolchain/logshield/pkg/masking"
)

// loadMaskingService loads the configuration in configDir and builds the
// masking service it describes.
func loadMaskingService(ctx context.Context, configDir string) (*config.Config, *masking.Service, error) {
	cfg, err := config.Initialize(ctx, configDir)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := masking.BuildCatalog(cfg.Masking)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build pattern catalog: %w", err)
	}
	return cfg, masking.NewService(catalog), nil
}
