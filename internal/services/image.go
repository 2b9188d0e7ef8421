package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// ImageVariantConfig defines one stored rendition of a play image
type ImageVariantConfig struct {
	Name   string
	Width  int
	Height int
}

// PlayImageVariants are written for every uploaded poster; the first one is
// recorded as the play's image reference.
var PlayImageVariants = []ImageVariantConfig{
	{Name: "poster", Width: 800, Height: 600},
	{Name: "thumbnail", Width: 150, Height: 150},
}

// ImageVariant describes an uploaded rendition
type ImageVariant struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}

// PlayImageService resizes and stores play posters
type PlayImageService struct {
	storage StorageService
	plays   PlayImageStore
	logger  *zap.Logger
}

// NewPlayImageService creates a new play image service
func NewPlayImageService(storage StorageService, plays PlayImageStore, logger *zap.Logger) *PlayImageService {
	return &PlayImageService{
		storage: storage,
		plays:   plays,
		logger:  logger,
	}
}

// UploadPoster decodes an image, writes every variant and points the play at the poster.
// If the play cannot be updated the new objects are removed again; a previous
// poster stored under another key is deleted once the play points at the new one.
func (s *PlayImageService) UploadPoster(ctx context.Context, playID int, reader io.Reader) ([]ImageVariant, error) {
	play, err := s.plays.GetPlayByID(ctx, playID)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	variants := make([]ImageVariant, 0, len(PlayImageVariants))
	for _, cfg := range PlayImageVariants {
		variant, err := s.uploadVariant(ctx, img, playID, cfg)
		if err != nil {
			s.discard(ctx, variants)
			return nil, err
		}
		variants = append(variants, *variant)
	}

	if err := s.plays.UpdatePlayImage(ctx, playID, variants[0].Key); err != nil {
		s.discard(ctx, variants)
		return nil, fmt.Errorf("failed to record play image: %w", err)
	}

	s.logger.Info("play image uploaded",
		zap.Int("play_id", playID),
		zap.String("key", variants[0].Key))

	if previous := play.ImageURL; isStorageKey(previous) && !hasKey(variants, previous) {
		s.removePrevious(ctx, previous)
	}

	return variants, nil
}

// discard deletes objects written by a failed upload
func (s *PlayImageService) discard(ctx context.Context, variants []ImageVariant) {
	for _, v := range variants {
		if err := s.storage.Delete(ctx, v.Key); err != nil {
			s.logger.Warn("failed to remove orphaned image", zap.String("key", v.Key), zap.Error(err))
		}
	}
}

func (s *PlayImageService) removePrevious(ctx context.Context, key string) {
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		s.logger.Warn("failed to check previous play image", zap.String("key", key), zap.Error(err))
		return
	}
	if !exists {
		return
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete previous play image", zap.String("key", key), zap.Error(err))
		return
	}
	s.logger.Info("previous play image deleted", zap.String("key", key))
}

func hasKey(variants []ImageVariant, key string) bool {
	for _, v := range variants {
		if v.Key == key {
			return true
		}
	}
	return false
}

func (s *PlayImageService) uploadVariant(ctx context.Context, img image.Image, playID int, cfg ImageVariantConfig) (*ImageVariant, error) {
	resized := imaging.Fit(img, cfg.Width, cfg.Height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", cfg.Name, err)
	}

	key := fmt.Sprintf("plays/%d/%s.jpg", playID, cfg.Name)
	url, err := s.storage.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", cfg.Name, err)
	}

	bounds := resized.Bounds()
	return &ImageVariant{
		Name:   cfg.Name,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Key:    key,
		URL:    url,
	}, nil
}
