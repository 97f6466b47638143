package app

import (
	"context"
	"fmt"

	"github.com/vk/botplan/internal/ctxlog"
	"github.com/vk/botplan/internal/plan"
)

// Run executes the planning pipeline: load the template, assemble the
// plan, render it. A failed plan still renders its diagnostics before the
// error is returned, so the user sees the full report.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "template", cfg.TemplatePath)

	doc, err := a.loader.Load(ctx, cfg.TemplatePath)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}
	a.logger.Debug("Template loaded.", "resources", len(doc.Resources), "outputs", len(doc.Outputs))

	result, planErr := a.planner.Plan(ctx, doc)
	if result != nil {
		if renderErr := a.render(cfg.Format, result); renderErr != nil {
			return renderErr
		}
	}
	if planErr != nil {
		return fmt.Errorf("planning failed: %w", planErr)
	}

	a.logger.Debug("App.Run finished.")
	return nil
}

func (a *App) render(format string, result *plan.Plan) error {
	if format == "json" {
		return plan.RenderJSON(a.outW, result)
	}
	return plan.RenderTable(a.outW, result)
}
