package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hyperjump/gluco/internal/config"
	"github.com/hyperjump/gluco/internal/watcher"
	"github.com/hyperjump/gluco/pkg/utils"
	"go.uber.org/zap"
)

// defaultCloseGrace is how long a replaced Context keeps serving in-flight requests.
const defaultCloseGrace = 30 * time.Second

// Holder serves the current Context and swaps in a freshly loaded one on reload.
type Holder struct {
	current    atomic.Pointer[Context]
	cfg        *config.Config
	logger     *zap.Logger
	mu         sync.Mutex // serializes reloads
	watcher    *watcher.Watcher
	closeGrace time.Duration
	retiring   map[*Context]*time.Timer
}

// NewHolder loads the first Context. A failure here is fatal to the caller.
func NewHolder(cfg *config.Config, logger *zap.Logger) (*Holder, error) {
	logger = utils.OrNop(logger)
	c, err := Load(cfg, logger)
	if err != nil {
		return nil, err
	}
	h := &Holder{
		cfg:        cfg,
		logger:     logger,
		closeGrace: defaultCloseGrace,
		retiring:   make(map[*Context]*time.Timer),
	}
	h.current.Store(c)
	return h, nil
}

// Current returns the Context in service.
func (h *Holder) Current() *Context {
	return h.current.Load()
}

// Reload builds a new Context from the config. On failure the current Context stays in service.
// The replaced Context is closed after the close grace period.
func (h *Holder) Reload() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, err := Load(h.cfg, h.logger)
	if err != nil {
		h.logger.Error("reload failed, keeping previous data", zap.Error(err))
		return err
	}
	old := h.current.Swap(c)
	if old != nil {
		h.retireLocked(old)
	}
	h.logger.Info("reloaded", zap.Int("questions", c.Status().Questions))
	return nil
}

func (h *Holder) retireLocked(old *Context) {
	h.retiring[old] = time.AfterFunc(h.closeGrace, func() {
		h.mu.Lock()
		delete(h.retiring, old)
		h.mu.Unlock()
		if err := old.Close(); err != nil {
			h.logger.Warn("closing replaced context failed", zap.Error(err))
		}
	})
}

// Watch reloads whenever the corpus or an artifact changes on disk, until ctx is done.
// It does nothing when watching is disabled in the config.
func (h *Holder) Watch(ctx context.Context) error {
	if !h.cfg.Watch.Enabled {
		return nil
	}
	w, err := watcher.NewWatcher(h.cfg.Paths(), func(paths []string) {
		h.logger.Info("data files changed", zap.Strings("paths", paths))
		_ = h.Reload()
	},
		watcher.WithDebounce(time.Duration(h.cfg.Watch.DebounceMS)*time.Millisecond),
		watcher.WithLogger(h.logger),
	)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	h.mu.Lock()
	h.watcher = w
	h.mu.Unlock()
	return nil
}

// Close stops the watcher and closes the current Context along with any replaced ones.
func (h *Holder) Close() error {
	h.mu.Lock()
	w := h.watcher
	h.watcher = nil
	retiring := h.retiring
	h.retiring = make(map[*Context]*time.Timer)
	h.mu.Unlock()
	if w != nil {
		w.Stop()
	}
	for old, t := range retiring {
		t.Stop()
		_ = old.Close()
	}
	if c := h.current.Load(); c != nil {
		return c.Close()
	}
	return nil
}
