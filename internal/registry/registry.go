// Package registry discovers widget markers and turns each one into a live
// controller exactly once. Markers arrive as an initial snapshot plus a
// stream of later additions; embeddings without a marker source can call
// Sync directly.
package registry

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Moazzam-Sonu/premier-whishList/internal/controller"
	"github.com/Moazzam-Sonu/premier-whishList/internal/domain"
	"github.com/Moazzam-Sonu/premier-whishList/internal/metrics"
)

// Kind identifies which controller a marker requests.
type Kind string

const (
	KindButton Kind = "button"
	KindPage   Kind = "page"
)

// Marker is one declarative widget marker. Config is the raw JSON payload
// embedded alongside the marker; malformed payloads still initialize a
// controller, which then stays inert.
type Marker struct {
	ID     string          `json:"id"`
	Kind   Kind            `json:"kind"`
	Config json.RawMessage `json:"config"`
}

// Source supplies markers: a snapshot of what exists now and a stream of
// markers appearing later.
type Source interface {
	Snapshot(ctx context.Context) ([]Marker, error)
	Watch(ctx context.Context) (<-chan Marker, error)
}

// ControllerFactory builds controllers over the shared caches and gateway.
type ControllerFactory interface {
	Button(cfg domain.WidgetConfig) *controller.Button
	Page(cfg domain.WidgetConfig) *controller.Page
}

// Widget is one initialized marker and its controller.
type Widget struct {
	InstanceID string
	MarkerID   string
	Kind       Kind
	CreatedAt  time.Time

	button *controller.Button
	page   *controller.Page
}

// WidgetInfo is the diagnostics view of a widget.
type WidgetInfo struct {
	InstanceID string                   `json:"instanceId"`
	MarkerID   string                   `json:"markerId"`
	Kind       Kind                     `json:"kind"`
	CreatedAt  time.Time                `json:"createdAt"`
	Button     *controller.ButtonStatus `json:"button,omitempty"`
}

// Registry initializes markers exactly once and keeps the live widget set.
type Registry struct {
	factory ControllerFactory
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	seen    map[string]struct{}
	widgets []*Widget
}

// New creates an empty registry.
func New(factory ControllerFactory, logger *slog.Logger) *Registry {
	return &Registry{
		factory: factory,
		logger:  logger,
		now:     time.Now,
		seen:    make(map[string]struct{}),
	}
}

// Sync initializes every not-yet-seen marker in the batch. A marker ID is
// recorded as seen before its controller does any work, so re-entrant or
// concurrent Sync calls over overlapping batches cannot double-initialize.
func (r *Registry) Sync(ctx context.Context, markers []Marker) {
	for _, marker := range markers {
		if marker.ID == "" {
			continue
		}

		r.mu.Lock()
		if _, ok := r.seen[marker.ID]; ok {
			r.mu.Unlock()
			continue
		}
		r.seen[marker.ID] = struct{}{}
		r.mu.Unlock()

		r.initialize(ctx, marker)
	}
}

func (r *Registry) initialize(ctx context.Context, marker Marker) {
	cfg := domain.ParseWidgetConfig(marker.Config)
	kind := marker.Kind
	if kind != KindPage {
		kind = KindButton
	}

	widget := &Widget{
		InstanceID: uuid.NewString(),
		MarkerID:   marker.ID,
		Kind:       kind,
		CreatedAt:  r.now().UTC(),
	}

	switch kind {
	case KindPage:
		widget.page = r.factory.Page(cfg)
		widget.page.Load(ctx)
	default:
		widget.button = r.factory.Button(cfg)
		widget.button.Hydrate(ctx)
	}

	r.mu.Lock()
	r.widgets = append(r.widgets, widget)
	r.mu.Unlock()

	metrics.WidgetsInitialized.WithLabelValues(string(kind)).Inc()
	r.logger.InfoContext(ctx, "widget initialized",
		slog.String("marker_id", marker.ID),
		slog.String("instance_id", widget.InstanceID),
		slog.String("kind", string(kind)),
	)
}

// Run performs the initial sync and then consumes the source's watch stream
// until the context is cancelled.
func (r *Registry) Run(ctx context.Context, src Source) error {
	markers, err := src.Snapshot(ctx)
	if err != nil {
		return err
	}
	r.Sync(ctx, markers)

	stream, err := src.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case marker, ok := <-stream:
			if !ok {
				return nil
			}
			r.Sync(ctx, []Marker{marker})
		}
	}
}

// Snapshot returns the diagnostics view of all live widgets in
// initialization order.
func (r *Registry) Snapshot() []WidgetInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]WidgetInfo, 0, len(r.widgets))
	for _, w := range r.widgets {
		info := WidgetInfo{
			InstanceID: w.InstanceID,
			MarkerID:   w.MarkerID,
			Kind:       w.Kind,
			CreatedAt:  w.CreatedAt,
		}
		if w.button != nil {
			status := w.button.Status()
			info.Button = &status
		}
		infos = append(infos, info)
	}
	return infos
}
