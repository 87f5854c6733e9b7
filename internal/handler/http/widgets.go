package http

import (
	"log/slog"
	"net/http"

	"github.com/Moazzam-Sonu/premier-whishList/internal/registry"
	"github.com/Moazzam-Sonu/premier-whishList/pkg/httputil"
)

// WidgetHandler serves the live widget snapshot.
type WidgetHandler struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// NewWidgetHandler creates a widget diagnostics handler.
func NewWidgetHandler(reg *registry.Registry, logger *slog.Logger) *WidgetHandler {
	return &WidgetHandler{registry: reg, logger: logger}
}

// List returns every initialized widget in initialization order.
func (h *WidgetHandler) List(w http.ResponseWriter, r *http.Request) {
	widgets := h.registry.Snapshot()
	if widgets == nil {
		widgets = []registry.WidgetInfo{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: widgets})
}
