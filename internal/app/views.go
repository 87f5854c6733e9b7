package app

import (
	"log/slog"

	"github.com/Moazzam-Sonu/premier-whishList/internal/controller"
)

// The daemon has no rendering surface; its views log state transitions so
// widget behavior stays observable. Embeddings supply real views instead.

type logButtonView struct {
	logger *slog.Logger
}

func (v logButtonView) SetBusy(busy bool) {
	v.logger.Debug("button busy", slog.Bool("busy", busy))
}

func (v logButtonView) SetActive(active bool) {
	v.logger.Info("button state", slog.Bool("active", active))
}

type logPageView struct {
	logger *slog.Logger
}

func (v logPageView) SetLoading(loading bool) {
	v.logger.Debug("page loading", slog.Bool("loading", loading))
}

func (v logPageView) ShowError(message string) {
	if message == "" {
		return
	}
	v.logger.Warn("page error", slog.String("message", message))
}

func (v logPageView) RenderRows(rows []controller.Row) {
	v.logger.Info("page rendered", slog.Int("rows", len(rows)))
}
