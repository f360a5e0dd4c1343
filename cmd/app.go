package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillpath/skillpath/internal/advisor"
	"github.com/skillpath/skillpath/internal/auth"
	"github.com/skillpath/skillpath/internal/config"
	"github.com/skillpath/skillpath/internal/llm"
	"github.com/skillpath/skillpath/internal/markup"
	"github.com/skillpath/skillpath/internal/roadmap"
	"github.com/skillpath/skillpath/internal/store"
	"github.com/skillpath/skillpath/internal/tutor"
)

// app bundles the services a command needs.
type app struct {
	cfg   *config.Config
	store store.Store
	auth  *auth.Service
}

// openApp loads the config and opens the local database.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return newApp(cfg, st), nil
}

func newApp(cfg *config.Config, st store.Store) *app {
	return &app{cfg: cfg, store: st, auth: auth.New(st, 0)}
}

func (a *app) Close() error {
	return a.store.Close()
}

func (a *app) provider(override string) (llm.Provider, error) {
	if override != "" {
		cfg := *a.cfg
		cfg.Provider = override
		return llm.NewProvider(&cfg)
	}
	return llm.NewProvider(a.cfg)
}

func (a *app) advisor(p llm.Provider, model string) *advisor.Advisor {
	return advisor.New(p,
		advisor.WithModel(a.cfg.ModelFor(firstNonEmpty(model, a.cfg.Advisor.Model))),
		advisor.WithTemperature(a.cfg.Advisor.Temperature),
		advisor.WithLogger(logger.Named("advisor")))
}

func (a *app) generator(p llm.Provider, model string) *roadmap.Generator {
	return roadmap.NewGenerator(p,
		roadmap.WithModel(a.cfg.ModelFor(firstNonEmpty(model, a.cfg.Roadmap.Model))),
		roadmap.WithTemperature(a.cfg.Roadmap.Temperature),
		roadmap.WithLogger(logger.Named("roadmap")))
}

func (a *app) tutor(p llm.Provider, model string) *tutor.Tutor {
	return tutor.New(p,
		tutor.WithStore(a.store),
		tutor.WithModel(a.cfg.ModelFor(firstNonEmpty(model, a.cfg.Tutor.Model))),
		tutor.WithInstructions(a.cfg.Tutor.Instructions),
		tutor.WithRenderer(markup.New(markup.WithHeadingLevel(a.cfg.Tutor.HeadingLevel))),
		tutor.WithLogger(logger.Named("tutor")))
}

// currentUserID returns the signed-in user's ID, or "" when signed out.
func (a *app) currentUserID(ctx context.Context) (string, error) {
	u, err := a.auth.Current(ctx)
	if errors.Is(err, auth.ErrNotSignedIn) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
