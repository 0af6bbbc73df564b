// Command swarm runs the metaecs swarm simulation in the terminal.
//
// Configuration comes from the environment (SWARM_BODIES, SWARM_FRAME,
// SWARM_TICKS, SWARM_SEED, SWARM_SPEED, SWARM_LOG). Press ESC, q or Ctrl-C to
// quit.
package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/edwinsyarief/metaecs"
	"github.com/edwinsyarief/metaecs/internal/config"
	"github.com/edwinsyarief/metaecs/internal/swarm"
)

type options struct {
	swarm.Config
	LogPath string `env:"LOG"`
}

func main() {
	var opts options
	if err := config.ParseEnv(swarm.EnvPrefix, &opts); err != nil {
		log.Fatal(err)
	}
	logger, closeLog, err := openLog(opts.LogPath)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}

	stats, err := run(screen, opts.Config, logger)
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("swarm: %d ticks, %d routine calls", stats.Tick, stats.Calls)
}

// openLog returns a logger writing to path, or a discarding logger when path
// is empty: the terminal belongs to the screen while the simulation runs.
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "swarm: ", log.LstdFlags|log.Lmicroseconds), func() { _ = f.Close() }, nil
}

type totals struct {
	Tick  uint64
	Calls int
}

func run(screen tcell.Screen, cfg swarm.Config, logger *log.Logger) (totals, error) {
	var stats totals
	if err := cfg.Validate(); err != nil {
		return stats, err
	}
	m := metaecs.New()
	bus := m.Events()
	metaecs.Subscribe(bus, func(ev metaecs.EntityAdded) {
		logger.Printf("added %v", ev.Entity)
	})
	metaecs.Subscribe(bus, func(ev metaecs.TickCompleted) {
		stats.Tick = ev.Tick
		stats.Calls += ev.Calls
		if ev.Tick%100 == 0 {
			logger.Printf("tick %d: %d systems, %d calls", ev.Tick, ev.Systems, ev.Calls)
		}
	})

	if err := swarm.Install(m); err != nil {
		return stats, err
	}
	w, h := screen.Size()
	world, _, err := swarm.Spawn(m, cfg, swarm.Rect{W: float64(w), H: float64(h)})
	if err != nil {
		return stats, err
	}
	if _, err := m.Add(swarm.NewScreen(screen)); err != nil {
		return stats, err
	}

	quit := make(chan struct{})
	resize := make(chan swarm.Rect, 1)
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				w, h := ev.Size()
				select {
				case resize <- swarm.Rect{W: float64(w), H: float64(h)}:
				default:
				}
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					close(quit)
					return
				}
			}
		}
	}()

	frame := time.NewTicker(cfg.Frame)
	defer frame.Stop()
	for cfg.Ticks == 0 || m.Tick() < cfg.Ticks {
		select {
		case <-quit:
			return stats, nil
		case bounds := <-resize:
			world.Set(swarm.Bounds, bounds)
			screen.Sync()
		case <-frame.C:
			screen.Clear()
			if err := m.Update(); err != nil {
				return stats, err
			}
			screen.Show()
		}
	}
	return stats, nil
}
