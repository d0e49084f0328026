// Package capture keeps raw upstream payloads that decoded cleanly, so they
// can be replayed as golden inputs and re-checked when the models change.
package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bxxf/flight-schema/internal/config"
	"github.com/bxxf/flight-schema/internal/mapper"
	"github.com/bxxf/flight-schema/internal/models/extras"
	"github.com/bxxf/flight-schema/internal/models/search"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const keyPrefix = "capture:"

var (
	ErrNotFound      = errors.New("capture not found")
	ErrUnknownFamily = errors.New("unknown payload family")
	ErrTooLarge      = errors.New("payload exceeds size limit")
)

type Family string

const (
	FamilySearch Family = "search"
	FamilyExtras Family = "extras"
)

func ParseFamily(s string) (Family, error) {
	switch f := Family(s); f {
	case FamilySearch, FamilyExtras:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// FamilyOfKey reads the family out of a key produced by Save.
func FamilyOfKey(key string) (Family, error) {
	rest, ok := strings.CutPrefix(key, keyPrefix)
	if !ok {
		return "", fmt.Errorf("%w: key %q", ErrUnknownFamily, key)
	}
	family, _, _ := strings.Cut(rest, ":")
	return ParseFamily(family)
}

type Store interface {
	Save(ctx context.Context, key string, raw []byte, ttl time.Duration) error
	Load(ctx context.Context, key string) ([]byte, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	store    Store
	logger   *zap.Logger
	maxBytes int64
	ttl      time.Duration
}

func NewService(store Store, cfg config.Config, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		logger:   logger,
		maxBytes: cfg.MaxPayloadBytes,
		ttl:      cfg.CaptureTTL,
	}
}

func (s *Service) checkSize(raw []byte) error {
	if s.maxBytes > 0 && int64(len(raw)) > s.maxBytes {
		return fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(raw), s.maxBytes)
	}
	return nil
}

func (s *Service) DecodeSearch(raw []byte) (*search.Response, error) {
	if err := s.checkSize(raw); err != nil {
		return nil, err
	}
	return mapper.DecodeSearch(raw)
}

// NormalizeExtras decodes an extras payload and re-emits it, dropping unknown
// fields and unset optionals.
func (s *Service) NormalizeExtras(raw []byte) ([]byte, *extras.Extras, error) {
	if err := s.checkSize(raw); err != nil {
		return nil, nil, err
	}
	ex, err := mapper.DecodeExtras(raw)
	if err != nil {
		return nil, nil, err
	}
	out, err := mapper.EncodeExtras(ex)
	if err != nil {
		return nil, nil, err
	}
	return out, ex, nil
}

// Validate decodes raw as the given family and discards the result.
func (s *Service) Validate(family Family, raw []byte) error {
	switch family {
	case FamilySearch:
		_, err := s.DecodeSearch(raw)
		return err
	case FamilyExtras:
		_, _, err := s.NormalizeExtras(raw)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFamily, family)
}

// Save validates raw and stores it. Search payloads are stored as received;
// extras payloads are stored in their re-encoded form.
func (s *Service) Save(ctx context.Context, family Family, raw []byte) (string, error) {
	stored := raw
	switch family {
	case FamilySearch:
		if _, err := s.DecodeSearch(raw); err != nil {
			return "", err
		}
	case FamilyExtras:
		out, _, err := s.NormalizeExtras(raw)
		if err != nil {
			return "", err
		}
		stored = out
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}

	key := keyPrefix + string(family) + ":" + uuid.New().String()
	if err := s.store.Save(ctx, key, stored, s.ttl); err != nil {
		return "", fmt.Errorf("saving capture: %w", err)
	}
	s.logger.Info("Capture stored", zap.String("key", key), zap.Int("bytes", len(stored)))
	return key, nil
}

func (s *Service) Load(ctx context.Context, key string) ([]byte, error) {
	if _, err := FamilyOfKey(key); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, key)
}

func (s *Service) List(ctx context.Context, family Family) ([]string, error) {
	if _, err := ParseFamily(string(family)); err != nil {
		return nil, err
	}
	return s.store.Keys(ctx, keyPrefix+string(family)+":*")
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if _, err := FamilyOfKey(key); err != nil {
		return err
	}
	return s.store.Delete(ctx, key)
}

// Revalidate loads a stored capture and decodes it again with the current
// models. A *mapper.SchemaError here means the models drifted away from what
// was captured.
func (s *Service) Revalidate(ctx context.Context, key string) error {
	family, err := FamilyOfKey(key)
	if err != nil {
		return err
	}
	raw, err := s.store.Load(ctx, key)
	if err != nil {
		return err
	}
	return s.Validate(family, raw)
}
