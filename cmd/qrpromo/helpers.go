package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ivlev/qrpromo/internal/composition"
	"github.com/ivlev/qrpromo/internal/history"
	"github.com/ivlev/qrpromo/internal/renderer"
	"github.com/ivlev/qrpromo/internal/source"
	"github.com/ivlev/qrpromo/internal/theme"
)

const placeholderSize = 64

func registry() (*composition.Registry, error) {
	return composition.NewRegistry(composition.Options{
		Theme:     theme.Default(),
		DonateURL: cfg.DonateURL,
	})
}

func lookup(id string) (*composition.Definition, error) {
	reg, err := registry()
	if err != nil {
		return nil, err
	}
	def, err := reg.Lookup(id)
	if err != nil {
		return nil, fmt.Errorf("%w (доступно: %v)", err, reg.IDs())
	}
	return def, nil
}

// openSource returns the asset directory, wrapped with placeholders when
// they are enabled. A missing directory is fatal only without placeholders.
func openSource() (source.Source, error) {
	var src source.Source
	dir, err := source.NewDirSource(cfg.AssetsDir)
	switch {
	case err == nil:
		src = dir
	case cfg.PlaceholderAssets:
		log.Printf("[!] Папка ассетов недоступна (%v), используются заглушки", err)
		src = source.NewMemorySource()
	default:
		return nil, fmt.Errorf("assets: %w", err)
	}

	if cfg.PlaceholderAssets {
		return source.Placeholder{Source: src, Color: theme.Default().Brand.NRGBA(), Size: placeholderSize}, nil
	}
	return src, nil
}

func loadFonts() (*renderer.Fonts, error) {
	fonts, err := renderer.LoadFonts(cfg.FontPath, cfg.BoldFontPath)
	if err != nil {
		return nil, err
	}
	if !fonts.Scalable() {
		fmt.Println("[*] Шрифт не задан, используется встроенный растровый шрифт")
	}
	return fonts, nil
}

// openHistory is best effort: a broken store never blocks a render.
func openHistory() *history.Store {
	if cfg.HistoryDB == "" {
		return nil
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		log.Printf("[!] История рендеров недоступна: %v", err)
		return nil
	}
	return store
}

// signalContext is cancelled on Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
