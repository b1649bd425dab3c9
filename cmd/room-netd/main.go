package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/touka-aoi/room-net/server"
)

func main() {
	var (
		addr              = flag.String("addr", ":8080", "listen address")
		broadcastInterval = flag.Duration("broadcast-interval", 250*time.Millisecond, "room info broadcast interval")
		idleTimeout       = flag.Duration("idle-timeout", 30*time.Second, "session idle timeout, 0 disables")
		debug             = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pubsub := server.NewSimplePubSub()
	host := server.NewRoomHost(pubsub, *broadcastInterval)
	handler := server.NewAcceptHandler(pubsub, host, *idleTimeout)
	httpServer := server.NewServer(*addr, handler)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return host.Run(ctx)
	})
	eg.Go(func() error {
		slog.Info("listening", "addr", *addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}
