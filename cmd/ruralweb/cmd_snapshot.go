// This file contains the page snapshot command.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/sitecheck"
)

var (
	snapshotOut  string
	snapshotPNG  bool
	snapshotFull bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [page]",
	Short: "Capture the behavior state of a site page",
	Long: `Opens a site page in the headless browser and saves what the
audits would see: menu markers, marked nav links, anchor targets,
navbar shadow, reveal counts and card wiring, as JSON. Defaults to
the index document when no page is given.

With --png a screenshot is saved alongside the JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "snapshots", "Output directory")
	snapshotCmd.Flags().BoolVar(&snapshotPNG, "png", false, "Also save a screenshot")
	snapshotCmd.Flags().BoolVar(&snapshotFull, "full", false, "Screenshot the full page height")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	page := cfg.Site.IndexDoc
	if len(args) > 0 {
		page = args[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("capturing snapshot",
		zap.String("page", page),
		zap.Bool("png", snapshotPNG))

	mgr := sitecheck.NewSessionManager(cfg)
	defer func() {
		if err := mgr.Shutdown(context.Background()); err != nil {
			logger.Warn("browser shutdown", zap.Error(err))
		}
	}()

	state, png, err := sitecheck.NewAuditor(cfg, mgr).Inspect(ctx, page, snapshotPNG, snapshotFull)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", page, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(snapshotOut, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", snapshotOut, err)
	}
	base := strings.TrimSuffix(filepath.Base(page), filepath.Ext(page))
	stamp := time.Now().Unix()

	jsonPath := filepath.Join(snapshotOut, fmt.Sprintf("%s_%d.json", base, stamp))
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	fmt.Printf("Saved to: %s\n", jsonPath)

	if snapshotPNG {
		pngPath := filepath.Join(snapshotOut, fmt.Sprintf("%s_%d.png", base, stamp))
		if err := os.WriteFile(pngPath, png, 0o644); err != nil {
			return fmt.Errorf("write screenshot: %w", err)
		}
		fmt.Printf("Saved to: %s\n", pngPath)
	}
	return nil
}
