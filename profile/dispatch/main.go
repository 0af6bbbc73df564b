// Profiling:
// go build ./profile/dispatch
// PROFILE_MODE=cpu ./dispatch
// go tool pprof -http=":8000" -nodefraction=0.001 ./dispatch cpu.pprof

package main

import (
	"log"

	"github.com/pkg/profile"

	"github.com/edwinsyarief/metaecs"
	"github.com/edwinsyarief/metaecs/internal/config"
)

type settings struct {
	Mode     string `env:"MODE" envDefault:"mem"`
	Rounds   int    `env:"ROUNDS" envDefault:"50"`
	Ticks    int    `env:"TICKS" envDefault:"1000"`
	Entities int    `env:"ENTITIES" envDefault:"1000"`
}

type vec struct {
	X, Y int64
}

func main() {
	var cfg settings
	if err := config.ParseEnv("PROFILE_", &cfg); err != nil {
		log.Fatal(err)
	}
	mode := profile.MemProfileAllocs
	if cfg.Mode == "cpu" {
		mode = profile.CPUProfile
	}
	p := profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook)
	calls := run(cfg.Rounds, cfg.Ticks, cfg.Entities)
	p.Stop()
	log.Printf("dispatch: %d routine calls", calls)
}

// run ticks a metasystem holding a single-role movement system and a two-role
// system joining every body with one clock.
func run(rounds, ticks, numEntities int) int {
	calls := 0
	for range rounds {
		m := metaecs.New()
		metaecs.Subscribe(m.Events(), func(ev metaecs.TickCompleted) { calls += ev.Calls })
		move := metaecs.NewSystem(metaecs.Roles{"body": {"pos", "vel"}}, func(match metaecs.Match) {
			body := match.Get("body")
			pos, _ := metaecs.Value[*vec](body, "pos")
			vel, _ := metaecs.Value[*vec](body, "vel")
			pos.X += vel.X
			pos.Y += vel.Y
		})
		age := metaecs.NewSystem(metaecs.Roles{"body": {"pos"}, "clock": {"dt"}}, func(match metaecs.Match) {
			dt, _ := metaecs.Value[int64](match.Get("clock"), "dt")
			pos, _ := metaecs.Value[*vec](match.Get("body"), "pos")
			pos.X += dt
		})
		mustAdd(m, move.Entity)
		mustAdd(m, age.Entity)
		mustAdd(m, metaecs.NewEntity(metaecs.Attributes{"dt": int64(1)}))
		for i := range numEntities {
			mustAdd(m, metaecs.NewEntity(metaecs.Attributes{
				"pos": &vec{X: int64(i)},
				"vel": &vec{X: 1, Y: 1},
			}))
		}
		for range ticks {
			if err := m.Update(); err != nil {
				log.Fatal(err)
			}
		}
	}
	return calls
}

func mustAdd(m *metaecs.Metasystem, e *metaecs.Entity) {
	if _, err := m.Add(e); err != nil {
		log.Fatal(err)
	}
}
