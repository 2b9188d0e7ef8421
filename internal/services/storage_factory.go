package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"theatre-box-office/internal/config"
)

// NewStorageService returns R2 storage when it is configured and reachable,
// otherwise local disk storage.
func NewStorageService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (StorageService, error) {
	if cfg.R2.AccessKeyID != "" && cfg.R2.SecretAccessKey != "" {
		r2, err := NewR2Service(ctx, cfg.R2)
		if err == nil {
			checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err = r2.HealthCheck(checkCtx)
			cancel()
		}
		if err == nil {
			logger.Info("storage: using R2", zap.String("bucket", cfg.R2.BucketName))
			return r2, nil
		}
		logger.Warn("storage: R2 unavailable, using local storage", zap.Error(err))
	}

	fallback, err := NewFallbackStorageService(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		return nil, err
	}
	logger.Info("storage: using local storage", zap.String("dir", cfg.Storage.UploadDir))
	return fallback, nil
}
