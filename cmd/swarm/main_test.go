package main

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/edwinsyarief/metaecs/internal/config"
	"github.com/edwinsyarief/metaecs/internal/swarm"
)

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("SWARM_FRAME", "10ms")
	t.Setenv("SWARM_LOG", "swarm.log")

	var opts options
	if err := config.ParseEnv(swarm.EnvPrefix, &opts); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if opts.Frame != 10*time.Millisecond || opts.LogPath != "swarm.log" {
		t.Errorf("expected frame 10ms and log swarm.log, got %v and %q", opts.Frame, opts.LogPath)
	}
	if opts.Bodies != 24 {
		t.Errorf("expected default bodies 24, got %d", opts.Bodies)
	}
}

func TestOptionsRejectNonPositiveFrame(t *testing.T) {
	for _, frame := range []string{"0s", "-5ms"} {
		t.Run(frame, func(t *testing.T) {
			t.Setenv("SWARM_FRAME", frame)
			var opts options
			if err := config.ParseEnv(swarm.EnvPrefix, &opts); err == nil {
				t.Fatalf("expected SWARM_FRAME=%s to be rejected", frame)
			}
		})
	}
}

func TestRunStopsAfterTicks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 20)

	cfg := swarm.Config{Bodies: 4, Frame: time.Millisecond, Ticks: 3, Seed: 1, Speed: 0.5}
	stats, err := run(screen, cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Tick != cfg.Ticks {
		t.Errorf("expected %d ticks, got %d", cfg.Ticks, stats.Tick)
	}

	cfg.Frame = 0
	if _, err := run(screen, cfg, log.New(io.Discard, "", 0)); err == nil {
		t.Error("expected run to reject a zero frame")
	}
}
