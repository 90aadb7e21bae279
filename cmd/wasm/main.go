//go:build js && wasm

// The ruralweb wasm module progressively enhances the static site. It
// is loaded by every page and wires the menu, scrolling, reveal and
// card behaviors once the document is ready.
package main

import (
	"syscall/js"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom/domjs"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/enhance"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

func main() {
	cfg := config.DefaultConfig()
	if err := logging.Init(cfg.Logging.Level, ""); err != nil {
		logging.BootError("init logging: %v", err)
	}

	doc := domjs.New()
	enhance.Setup(doc, cfg)

	// published after the enhancement callback above has run, the
	// audit tool polls for it
	doc.Ready(func() {
		js.Global().Set("ruralwebReady", true)
	})

	logging.Boot("%s %s loaded", cfg.Name, cfg.Version)

	// keep the module alive, all work happens in event callbacks
	select {}
}
