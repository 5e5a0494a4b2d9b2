package option

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/arraypress/contentquery/internal/config"
	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/ports/secondary"
	"github.com/arraypress/contentquery/internal/static/errs"
)

const optionCachePrefix = "option:"

type optionService struct {
	store      secondary.OptionStore
	transients secondary.TransientPort
	cfg        *config.TransientCfg
	logger     primary.Logger
}

var _ IOptionService = &optionService{}

func NewOptionService(store secondary.OptionStore, transients secondary.TransientPort, cfg *config.TransientCfg, logger primary.Logger) IOptionService {
	return &optionService{
		store:      store,
		transients: transients,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *optionService) Get(ctx context.Context, name string, out any) error {
	raw, err := s.fetch(ctx, name)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *optionService) GetDefault(ctx context.Context, name string, out any, def any) error {
	err := s.Get(ctx, name, out)
	if errors.Is(err, errs.OptionNotFound) {
		encoded, encErr := json.Marshal(def)
		if encErr != nil {
			return encErr
		}
		return json.Unmarshal(encoded, out)
	}
	return err
}

func (s *optionService) Set(ctx context.Context, name string, value any, autoload bool) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, name, encoded, autoload); err != nil {
		return err
	}
	if err := s.transients.Delete(ctx, optionCachePrefix+name); err != nil {
		s.logger.Warn("Failed to drop cached option", "name", name, "error", err)
	}
	return nil
}

func (s *optionService) Delete(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	if err := s.transients.Delete(ctx, optionCachePrefix+name); err != nil {
		s.logger.Warn("Failed to drop cached option", "name", name, "error", err)
	}
	return nil
}

func (s *optionService) LoadAutoload(ctx context.Context) (map[string]string, error) {
	raw, err := s.store.GetAutoload(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for name, value := range raw {
		out[name] = string(value)
	}
	return out, nil
}

// fetch reads through the transient cache before hitting the store.
func (s *optionService) fetch(ctx context.Context, name string) ([]byte, error) {
	cacheKey := optionCachePrefix + name
	if cached, err := s.transients.Get(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	raw, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errs.OptionNotFound
	}

	if err := s.transients.Set(ctx, cacheKey, raw, s.cfg.DefaultTTL); err != nil {
		s.logger.Warn("Failed to cache option", "name", name, "error", err)
	}
	return raw, nil
}
