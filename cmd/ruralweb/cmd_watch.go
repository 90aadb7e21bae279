// This file contains the audit-on-change command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/sitecheck"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rerun the site audit whenever the site changes",
	Long: `Audits the site once, then watches the site directory and reruns
the audit after each settled burst of changes to html, css, js or
wasm files.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mgr := sitecheck.NewSessionManager(cfg)
	defer func() {
		if err := mgr.Shutdown(context.Background()); err != nil {
			logger.Warn("browser shutdown", zap.Error(err))
		}
	}()

	auditor := sitecheck.NewAuditor(cfg, mgr)

	runOnce := func() {
		runCtx, runCancel := context.WithTimeout(ctx, timeout)
		defer runCancel()

		findings, err := auditor.Run(runCtx)
		if err != nil {
			logger.Error("audit failed", zap.Error(err))
			return
		}
		fmt.Print(sitecheck.RenderReport(findings))
	}

	runOnce()

	w, err := sitecheck.NewWatcher(cfg, func(paths []string) {
		logger.Info("site changed", zap.Int("files", len(paths)))
		runOnce()
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	fmt.Printf("Watching %s. Press Ctrl+C to stop\n", cfg.Site.Dir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("received shutdown signal")
	return nil
}
