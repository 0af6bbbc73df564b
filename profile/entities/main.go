// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"log"

	"github.com/pkg/profile"

	"github.com/edwinsyarief/metaecs"
	"github.com/edwinsyarief/metaecs/internal/config"
)

type settings struct {
	Rounds   int `env:"ROUNDS" envDefault:"50"`
	Iters    int `env:"ITERS" envDefault:"1000"`
	Entities int `env:"ENTITIES" envDefault:"1000"`
	Systems  int `env:"SYSTEMS" envDefault:"8"`
}

func main() {
	var cfg settings
	if err := config.ParseEnv("PROFILE_", &cfg); err != nil {
		log.Fatal(err)
	}
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(cfg.Rounds, cfg.Iters, cfg.Entities, cfg.Systems)
	p.Stop()
}

// run exercises the registration protocol: adding and removing entities, and
// toggling an attribute that moves them in and out of a role.
func run(rounds, iters, numEntities, numSystems int) {
	for range rounds {
		m := metaecs.New()
		for range numSystems {
			s := metaecs.NewSystem(metaecs.Roles{
				"a": {"comp1"},
				"b": {"comp1", "comp2"},
			}, func(metaecs.Match) {})
			if _, err := m.Add(s.Entity); err != nil {
				log.Fatal(err)
			}
		}
		entities := make([]*metaecs.Entity, numEntities)
		for i := range entities {
			entities[i] = metaecs.NewEntity(metaecs.Attributes{"comp1": i})
		}
		for range iters {
			for _, e := range entities {
				if _, err := m.Add(e); err != nil {
					log.Fatal(err)
				}
			}
			for _, e := range entities {
				e.Set("comp2", true)
				e.Delete("comp2")
			}
			for _, e := range entities {
				if _, err := m.Remove(e); err != nil {
					log.Fatal(err)
				}
			}
		}
	}
}
