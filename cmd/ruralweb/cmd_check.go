// This file contains the one-shot site audit command.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/sitecheck"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit the site behaviors in a headless browser",
	Long: `Opens every configured page in a headless browser and checks the
wired behaviors: menu lockstep, active link marking, anchor offsets,
the navbar shadow, reveal animations and card forwarding.

Exits non-zero when any audit fails.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Emit findings as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	logger.Info("auditing site",
		zap.String("dir", cfg.Site.Dir),
		zap.Int("pages", len(cfg.Check.Pages)))

	mgr := sitecheck.NewSessionManager(cfg)
	defer func() {
		if err := mgr.Shutdown(context.Background()); err != nil {
			logger.Warn("browser shutdown", zap.Error(err))
		}
	}()

	findings, err := sitecheck.NewAuditor(cfg, mgr).Run(ctx)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if checkJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(findings); err != nil {
			return err
		}
	} else {
		fmt.Print(sitecheck.RenderReport(findings))
	}

	if s := sitecheck.Summarize(findings); s.Failed > 0 {
		return fmt.Errorf("%d of %d audits failed", s.Failed, s.Total)
	}
	return nil
}
