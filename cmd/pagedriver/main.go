// Package main runs the pagedriver service: a single-session browser
// automation API with a content transformation pipeline alongside it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entrhq/pagedriver/pkg/browser"
	"github.com/entrhq/pagedriver/pkg/config"
	"github.com/entrhq/pagedriver/pkg/logging"
	"github.com/entrhq/pagedriver/pkg/server"
)

const shutdownGrace = 35 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pagedriver v%s\n", server.Version)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "pagedriver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logging.NewLogger("pagedriver")
	if cfg.LogFile != "" {
		fileLog, err := logging.NewFileLogger("pagedriver", cfg.LogFile)
		if err != nil {
			return err
		}
		log = fileLog
	}
	defer log.Close()

	manager := browser.NewSessionManager(browser.SessionOptions{
		Headless: cfg.Headless,
		Viewport: browser.Viewport{
			Width:  cfg.ViewportWidth,
			Height: cfg.ViewportHeight,
		},
	}, log)

	log.Infof("starting playwright driver")
	if err := manager.Initialize(); err != nil {
		return fmt.Errorf("playwright initialization failed: %w", err)
	}

	dispatcher := browser.NewDispatcher(manager, log)
	srv := server.New(cfg, dispatcher, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		dispatcher.Close()
		return err
	case sig := <-sigCh:
		log.Infof("received %s, shutting down", sig)
	}

	// Stop accepting requests, let in-flight actions drain, then close
	// the queue and the browser.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("http shutdown: %v", err)
	}

	dispatcher.Close()
	if err := manager.Shutdown(); err != nil {
		log.Errorf("browser shutdown: %v", err)
	}

	log.Infof("shutdown complete")
	return nil
}
