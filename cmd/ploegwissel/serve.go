package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xelth-com/ploegwissel/internal/handlers"
	"github.com/xelth-com/ploegwissel/internal/services/printer"
	"github.com/xelth-com/ploegwissel/internal/session"
	"github.com/xelth-com/ploegwissel/internal/storage"
	"github.com/xelth-com/ploegwissel/internal/utils"
	"github.com/xelth-com/ploegwissel/internal/websocket"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the checklist API for the station tablets",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	sink, err := printer.NewSink(cfg.ReportSink, cfg.ReportDir, cfg.ChromeBin)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub()
	a, err := openApp(ctx, cfg,
		storage.Options{OnSaved: hub.PublishSaved},
		session.Options{OnChange: func(st session.State) { hub.PublishState(st.Score, st.CompanyName) }},
	)
	if err != nil {
		return err
	}
	defer a.Close()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.NewRouter(a.session, hub, sink),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error {
		log.Printf("🚀 Server starting on port %s [store: %s, sink: %s]", cfg.Port, cfg.StoreDriver, cfg.ReportSink)
		for _, u := range utils.StationURLs(cfg.Port) {
			log.Printf("📡 Tablets can connect to %s", u)
		}
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("⚠️  Shutting down gracefully...")

		// Create context with timeout for graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("✅ Shutdown complete")
	return nil
}
