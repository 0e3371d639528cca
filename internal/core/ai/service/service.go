package service

import (
	"context"
	"errors"
	"time"

	"ranna-banna/internal/core/ai/cache"
	"ranna-banna/internal/core/ai/provider"
	"ranna-banna/internal/infrastructure/config"
	"ranna-banna/internal/pkg/common"

	"go.uber.org/zap"
)

// Service fronts the AI backends with default models, per-call timeouts, caching and call logging
type Service struct {
	text         provider.TextGenerator
	images       provider.ImageGenerator
	cacheManager *cache.Manager
	textModel    string
	imageModel   string
	textTimeout  time.Duration
	imageTimeout time.Duration
}

var (
	_ provider.TextGenerator  = (*Service)(nil)
	_ provider.ImageGenerator = (*Service)(nil)
)

// NewService creates the AI service. cacheManager may be nil.
func NewService(cfg *config.Config, text provider.TextGenerator, images provider.ImageGenerator, cacheManager *cache.Manager) *Service {
	return &Service{
		text:         text,
		images:       images,
		cacheManager: cacheManager,
		textModel:    cfg.Gemini.TextModel,
		imageModel:   cfg.Gemini.ImageModel,
		textTimeout:  cfg.AI.TextTimeout,
		imageTimeout: cfg.AI.ImageTimeout,
	}
}

// GenerateStructuredText generates schema-constrained JSON, serving cacheable requests from the cache
func (s *Service) GenerateStructuredText(ctx context.Context, req *provider.StructuredRequest) (string, error) {
	call := *req
	if call.Model == "" {
		call.Model = s.textModel
	}

	var key string
	if call.Cacheable && s.cacheManager != nil {
		key = cache.Key(call.Operation, call.Model, call.SystemInstruction, call.Prompt)
		if val, err := s.cacheManager.Get(key); err == nil && val != "" {
			common.LogCacheHit(call.Operation)
			return val, nil
		}
		common.LogCacheMiss(call.Operation)
	}

	callCtx, cancel := withTimeout(ctx, s.textTimeout)
	defer cancel()

	start := time.Now()
	content, err := s.text.GenerateStructuredText(callCtx, &call)
	common.LogAICall(call.Operation, call.Model, time.Since(start), err)
	if err != nil {
		return "", timeoutError(ctx, callCtx, err)
	}

	if key != "" {
		s.store(&call, key, content)
	}

	return content, nil
}

// store caches content unless the request's validator rejects it
func (s *Service) store(call *provider.StructuredRequest, key, content string) {
	if call.Validate != nil {
		if err := call.Validate(content); err != nil {
			common.LogWarn("Not caching invalid AI response",
				zap.String("operation", call.Operation),
				zap.Error(err),
			)
			return
		}
	}
	if err := s.cacheManager.Set(key, content); err != nil {
		common.LogWarn("Failed to cache AI response",
			zap.String("operation", call.Operation),
			zap.Error(err),
		)
	}
}

// GenerateImage generates images with the image timeout applied
func (s *Service) GenerateImage(ctx context.Context, req *provider.ImageRequest) ([]provider.Image, error) {
	call := *req
	if call.Model == "" {
		call.Model = s.imageModel
	}

	callCtx, cancel := withTimeout(ctx, s.imageTimeout)
	defer cancel()

	start := time.Now()
	images, err := s.images.GenerateImage(callCtx, &call)
	common.LogAICall("generate image", call.Model, time.Since(start), err)
	if err != nil {
		return nil, timeoutError(ctx, callCtx, err)
	}
	return images, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// timeoutError reports a per-call deadline as context.DeadlineExceeded while the caller context is still live
func timeoutError(parent, call context.Context, err error) error {
	if parent.Err() == nil && errors.Is(call.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(err, context.DeadlineExceeded)
	}
	return err
}
