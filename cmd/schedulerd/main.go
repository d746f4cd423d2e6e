/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command schedulerd is a long-running demonstration of the scheduler
// driven end to end: it seeds a fixed demo fleet, ticks it on a real
// wall-clock interval, serves its Prometheus metrics over HTTP, and
// logs a periodic status line on a cron schedule.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/entity"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/glue"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/schedtest"
	"github.com/amoljassal/sis-kernel-showcase-sub013/pkg/tick"
)

func main() {
	addr := flag.String("addr", ":9090", "address to serve /metrics on")
	fleetSize := flag.Int("fleet-size", 16, "number of randomized reservations to seed at startup")
	statusCron := flag.String("status-cron", "@every 1m", "robfig/cron schedule for the periodic status log")
	flag.Parse()

	zlog, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zlog.Sync() //nolint:errcheck
	logger := zapr.NewLogger(zlog)

	cfg := glue.DefaultConfig()
	registry := prometheus.NewRegistry()
	g, err := glue.New(cfg, glue.WithLogger(logger), glue.WithRegisterer(registry))
	if err != nil {
		logger.Error(err, "failed to build scheduler")
		os.Exit(1)
	}

	admitted := 0
	for i := 0; i < *fleetSize; i++ {
		id := entity.ID(i + 1)
		if err := g.Admit(id, schedtest.RandomDescriptor(20_000_000, 200_000_000)); err != nil {
			continue
		}
		admitted++
	}
	logger.Info("seeded demo fleet", "requested", *fleetSize, "admitted", admitted)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: *addr, Handler: mux}

	c := cron.New()
	if _, err := c.AddFunc(*statusCron, g.PrintStatus); err != nil {
		logger.Error(err, "invalid status-cron schedule")
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	hook := tick.New(g, cfg.TickNS)
	tickInterval := time.Duration(cfg.TickNS) * time.Nanosecond
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				hook.OnTick()
			}
		}
	}()

	go func() {
		logger.Info("serving metrics", "addr", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "metrics server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "graceful shutdown failed")
	}
}
