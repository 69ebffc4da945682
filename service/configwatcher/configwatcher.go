// SPDX-License-Identifier: BSD-3-Clause

package configwatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nats-io/nats.go"

	"github.com/At1ass/tt-riingd/pkg/eventbus"
	"github.com/At1ass/tt-riingd/pkg/log"
	"github.com/At1ass/tt-riingd/service"
)

var _ service.Service = (*Watcher)(nil)

// Watcher is the C12.rest config watcher: priority 6, non-critical. It
// watches the directory containing the configuration file
// (non-recursively) for create/modify events naming that file, debounces
// them, runs the change classifier, and publishes ConfigChangeDetected.
type Watcher struct {
	config *config
	bus    *eventbus.Bus
	logger *slog.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

// New builds a Watcher service. WithState is required.
func New(opts ...Option) *Watcher {
	cfg := &config{
		serviceName:        DefaultServiceName,
		serviceDescription: DefaultServiceDescription,
		serviceVersion:     DefaultServiceVersion,
		debounce:           DefaultDebounce,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &Watcher{config: cfg}
}

// Name returns the service name.
func (w *Watcher) Name() string { return w.config.serviceName }

// Run drives the watch loop until ctx is canceled.
func (w *Watcher) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	w.logger = log.GetGlobalLogger().With("service", w.config.serviceName)

	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return ErrServiceAlreadyStarted
	}
	w.started = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	if w.config.state == nil {
		return ErrMissingState
	}
	path := w.config.state.ConfigManager().Path()
	if path == "" {
		return ErrNoConfigPath
	}
	dir := filepath.Dir(path)
	filename := filepath.Base(path)

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("configwatcher: connect: %w", err)
	}
	defer nc.Drain() //nolint:errcheck

	w.bus = eventbus.NewBus(nc, w.logger)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("configwatcher: create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("configwatcher: watch %s: %w", dir, err)
	}

	w.logger.InfoContext(ctx, "starting config watcher", "path", path, "debounce", w.config.debounce)

	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			err := ctx.Err()
			w.logger.InfoContext(context.WithoutCancel(ctx), "stopping config watcher")
			return err

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != filename {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(w.config.debounce)
				debounceC = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounceC:
					default:
					}
				}
				debounce.Reset(w.config.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				continue
			}
			w.logger.ErrorContext(ctx, "config watcher: filesystem notification error", "error", err)

		case <-debounceC:
			debounceC = nil
			w.handleChange(ctx)
		}
	}
}

// handleChange re-parses the configuration file, classifies the change
// against the in-memory copy, and publishes ConfigChangeDetected.
func (w *Watcher) handleChange(ctx context.Context) {
	change, err := w.config.state.ConfigManager().AnalyzeChanges()
	if err != nil {
		w.logger.ErrorContext(ctx, "config watcher: classify change failed", "error", err)
		return
	}

	w.logger.InfoContext(ctx, "config change detected", "kind", change.Kind, "changed_sections", change.ChangedSections)

	if err := w.bus.Publish(eventbus.Event{Kind: eventbus.ConfigChangeDetected, ConfigChange: change}); err != nil {
		if errors.Is(err, eventbus.ErrNoSubscribers) {
			w.logger.DebugContext(ctx, "config watcher: no subscribers")
		} else {
			w.logger.ErrorContext(ctx, "config watcher publish failed", "error", err)
		}
	}
}
