package main

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"questwalk/internal/api"
	"questwalk/internal/game"
	"questwalk/internal/save"
	"questwalk/internal/session"
	"questwalk/internal/store"
	"questwalk/internal/web"
)

type config struct {
	Addr        string        `env:"QUESTWALK_ADDR" envDefault:":8080"`
	DBDSN       string        `env:"QUESTWALK_DB" envDefault:"file:questwalk.db?_journal=WAL"`
	CatalogPath string        `env:"QUESTWALK_CATALOG"`
	TravelDelay time.Duration `env:"QUESTWALK_TRAVEL_DELAY" envDefault:"600ms"`
	EndDelay    time.Duration `env:"QUESTWALK_END_DELAY" envDefault:"2s"`

	// SaveEndpoint points the gateway at a remote save store; the
	// default is the store this binary serves itself under /api.
	SaveEndpoint string `env:"QUESTWALK_SAVE_ENDPOINT" envDefault:"http://localhost:8080/api"`
}

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}

	catalog := game.DefaultCatalog()
	if cfg.CatalogPath != "" {
		c, err := game.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			log.Fatal(err)
		}
		catalog = c
	}

	st, err := store.Open(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	tmpl := template.Must(template.ParseFiles(
		"templates/layout.html",
		"templates/game.html",
	))

	gateway := save.NewClient(cfg.SaveEndpoint)

	srv := &web.Server{
		Sessions: session.NewMemoryStore[*game.Session](),
		Gateway:  gateway,
		Tmpl:     tmpl,
		NewSession: func() *game.Session {
			s := game.NewSession(catalog, gateway)
			s.TravelDelay = cfg.TravelDelay
			s.EndDelay = cfg.EndDelay
			return s
		},
	}

	mux := http.NewServeMux()
	mux.Handle("/api", &api.Handler{Store: st})
	mux.Handle("/", srv.Routes())

	log.Printf("listening on http://localhost%s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, mux))
}
