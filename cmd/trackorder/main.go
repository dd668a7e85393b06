package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/lifecycle"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/tracking"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/pkg/logger"

	"go.uber.org/zap"
)

// trackorder [-base http://localhost:8080] [-interval 10s] [-once] TRX1234ABCD
func main() {
	base := flag.String("base", "http://localhost:8080", "адрес сервиса заказов")
	interval := flag.Duration("interval", tracking.DefaultInterval, "интервал опроса (5s..30s)")
	once := flag.Bool("once", false, "один запрос без live-режима")
	flag.Parse()

	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	if flag.NArg() != 1 {
		log.Fatal("usage: trackorder [flags] <tracking_id>")
	}
	trackingID := service.NormalizeTrackingID(flag.Arg(0))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	done := make(chan struct{})
	var finished bool
	p := tracking.NewPoller(tracking.NewHTTPFetcher(*base, nil), trackingID, tracking.Options{
		Interval: *interval,
		Live:     !*once,
		OnChange: func(st tracking.State) {
			if st.IsFetching || finished {
				return
			}
			switch {
			case st.Err != nil && st.Order == nil:
				log.Warn("tracking error", zap.Error(st.Err), zap.Bool("terminal", st.Terminal))
			case st.Order != nil && (st.Changed || *once):
				fmt.Printf("%s  %s  %s  total=%d\n",
					st.LastUpdatedAt.Format(time.RFC3339), st.Order.TrackingID, st.Order.Status, st.Order.Total)
			}
			if *once || st.Terminal || (st.Order != nil && lifecycle.IsTerminal(st.Order.Status)) {
				finished = true
				close(done)
			}
		},
	}, log)

	p.Start(ctx)
	defer p.Stop()

	select {
	case <-ctx.Done():
	case <-done:
	}
}
