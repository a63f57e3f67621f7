// Package persist mirrors countdown state into a key-value backend on a
// best-effort basis. Failures are logged and never returned to callers.
package persist

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/countdown/internal/model"
)

// Storage keys.
const (
	KeyFontSize      = "fontSize"
	KeyPaused        = "isPaused"
	KeyManualMode    = "isManualMode"
	KeyTimeLeft      = "timeLeft"
	KeyManualTimeSet = "manualTimeSet"
)

// Keys lists every key written by SaveState.
var Keys = []string{KeyFontSize, KeyPaused, KeyManualMode, KeyTimeLeft, KeyManualTimeSet}

const opTimeout = 2 * time.Second

// Backend is the raw key-value storage used by Helper.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Helper serializes values to JSON and writes them to a Backend.
type Helper struct {
	backend Backend
	log     *zap.Logger
}

// New returns a Helper. A nil logger discards diagnostics.
func New(backend Backend, log *zap.Logger) *Helper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Helper{backend: backend, log: log.Named("persist")}
}

// Save encodes value and stores it under key.
func (h *Helper) Save(key string, value any) {
	if h == nil || h.backend == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		h.log.Warn("failed to encode value", zap.String("key", key), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := h.backend.Put(ctx, key, string(data)); err != nil {
		h.log.Warn("failed to save value", zap.String("key", key), zap.Error(err))
	}
}

// Load decodes the value stored under key into a T, returning def when the
// key is absent, unreadable or corrupt.
func Load[T any](h *Helper, key string, def T) T {
	if h == nil || h.backend == nil {
		return def
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	raw, ok, err := h.backend.Get(ctx, key)
	if err != nil {
		h.log.Warn("failed to read value", zap.String("key", key), zap.Error(err))
		return def
	}
	if !ok || raw == "" {
		return def
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		h.log.Warn("failed to decode value", zap.String("key", key), zap.Error(err))
		return def
	}
	return out
}

// LoadState rehydrates the full countdown state, falling back to defaults
// field by field.
func (h *Helper) LoadState(defaultFontSize int) model.State {
	state := model.DefaultState()
	if model.ValidFontSize(defaultFontSize) {
		state.FontSize = defaultFontSize
	}

	fontSize := Load(h, KeyFontSize, state.FontSize)
	if model.ValidFontSize(fontSize) {
		state.FontSize = fontSize
	} else {
		h.log.Warn("ignoring stored font size", zap.Int("value", fontSize))
	}
	state.Paused = Load(h, KeyPaused, false)
	if Load(h, KeyManualMode, false) {
		state.Mode = model.ModeManual
	}
	remaining := Load(h, KeyTimeLeft, model.TimeRemaining{})
	if validRemaining(remaining) {
		state.Remaining = remaining
	} else {
		h.log.Warn("ignoring stored time left", zap.Stringer("value", remaining))
	}
	state.ManualTimeSet = Load[*bool](h, KeyManualTimeSet, nil)
	return state
}

// SaveState writes every persisted field of s.
func (h *Helper) SaveState(s model.State) {
	h.Save(KeyFontSize, s.FontSize)
	h.Save(KeyPaused, s.Paused)
	h.Save(KeyManualMode, s.Manual())
	h.Save(KeyTimeLeft, s.Remaining)
	h.Save(KeyManualTimeSet, s.ManualTimeSet)
}

func validRemaining(t model.TimeRemaining) bool {
	return t.Days >= 0 && t.Hours >= 0 && t.Minutes >= 0 && t.Seconds >= 0
}
