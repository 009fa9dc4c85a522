package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	identityinadapter "crux/internal/modules/identity/adapter/in"
	identityoutadapter "crux/internal/modules/identity/adapter/out"
	identityservice "crux/internal/modules/identity/service"
	identityusecase "crux/internal/modules/identity/usecase"
	recordinginadapter "crux/internal/modules/recording/adapter/in"
	recordingusecase "crux/internal/modules/recording/usecase"
	routeinadapter "crux/internal/modules/route/adapter/in"
	routeoutadapter "crux/internal/modules/route/adapter/out"
	"crux/internal/modules/route/domain"
	routeservice "crux/internal/modules/route/service"
	routeusecase "crux/internal/modules/route/usecase"
	sessioninadapter "crux/internal/modules/session/adapter/in"
	sessionoutadapter "crux/internal/modules/session/adapter/out"
	sessionservice "crux/internal/modules/session/service"
	sessionusecase "crux/internal/modules/session/usecase"
	"crux/internal/platform/clock"
	"crux/internal/platform/config"
	"crux/internal/platform/httpapi"
	"crux/internal/platform/id"
	uiapp "crux/internal/ui/app"
)

type App struct {
	IdentityCLI  identityinadapter.CLIHandler
	SessionCLI   sessioninadapter.CLIHandler
	RecordingTUI recordinginadapter.TUIHandler
	RouteCLI     routeinadapter.CLIHandler

	cfg     config.Config
	closers []func() error
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	app := &App{cfg: cfg}

	kv, err := identityoutadapter.NewSQLiteKeyValueStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new identity store: %w", err)
	}
	app.closers = append(app.closers, kv.Close)
	identitySvc := identityservice.NewIdentityService(kv)

	client, err := httpapi.New(httpapi.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Tokens:  identitySvc,
		IDs:     ids,
	})
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new api client: %w", err)
	}
	log.Debug().Str("base_url", client.BaseURL()).Dur("timeout", cfg.Timeout).Msg("api client ready")
	identityUC := identityusecase.NewInteractor(identitySvc, identityoutadapter.NewHTTPAuthenticator(client))

	journal, err := sessionoutadapter.NewSQLiteJournal(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new climb journal: %w", err)
	}
	app.closers = append(app.closers, journal.Close)
	manager := sessionservice.NewManager(sessionoutadapter.NewHTTPSessionAPI(client))
	sessionUC := sessionusecase.NewInteractor(manager, identityUC, journal, sessionoutadapter.NewMarkdownLogbook(), clk, ids)

	recordingUC := recordingusecase.NewInteractor(sessionUC)

	routeSvc := routeservice.NewRouteService(
		domain.DefaultPreparer(),
		routeoutadapter.NewHTTPRenderer(client),
		routeoutadapter.NewFileImageStore(),
	)
	routeUC := routeusecase.NewInteractor(routeSvc, filepath.Join(cfg.DataDir, "routes"))

	app.IdentityCLI = identityinadapter.NewCLIHandler(identityUC)
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.RecordingTUI = recordinginadapter.NewTUIHandler(recordingUC)
	app.RouteCLI = routeinadapter.NewCLIHandler(routeUC)
	return app, nil
}

// Close releases the local stores in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(ctx context.Context, app *App) error {
	if _, err := app.IdentityCLI.WhoAmI(ctx); err != nil {
		return fmt.Errorf("sign in first (crux login): %w", err)
	}
	model := uiapp.NewModel(ctx, app.SessionCLI, app.RecordingTUI, app.RouteCLI, app.cfg.TickInterval)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if m, ok := final.(uiapp.Model); ok {
		m.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
