package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/cache"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/session"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/usecase"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/apiclient"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/backend"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/config"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// Runtime Workspace de la invocación más lo necesario para imprimir.
type Runtime struct {
	Workspace *usecase.Workspace
	Formatter table.Formatter
	Close     func()
}

// Opener construye el Runtime para el token de la invocación. logs recibe el logger.
type Opener func(ctx context.Context, token string, verbose bool, logs io.Writer) (*Runtime, error)

// DefaultOpener lee la configuración del entorno, abre la caché (sqlite salvo que
// CACHE_DRIVER diga otra cosa) y construye el cliente de la API.
func DefaultOpener(ctx context.Context, token string, verbose bool, logs io.Writer) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, NewExitError(ExitCommandError, err.Error())
	}
	level := cfg.App.LogLevel
	if verbose {
		level = "debug"
	} else if level == "info" {
		level = "warn"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Out: logs})

	driver := cfg.Cache.Driver
	if _, set := os.LookupEnv("CACHE_DRIVER"); !set {
		driver = config.CacheSQLite
	}
	repo, closeRepo, err := backend.Open(ctx, cfg, driver)
	if err != nil {
		return nil, &ExitError{Code: ExitFailure, Message: "no se pudo abrir la caché", Err: err}
	}

	deps := usecase.Deps{
		API:   apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, log),
		Cache: cache.NewStore(repo, log, cache.WithPrefix(cfg.Cache.Prefix)),
		Bus:   invalidate.NewLocalBus(),
		Log:   log,
		TTLs: usecase.TTLs{
			Catalog:          cfg.Cache.CatalogTTL,
			AdminInventories: cfg.Cache.AdminInventories,
			AdminBorrows:     cfg.Cache.AdminBorrows,
			UserReturns:      cfg.Cache.UserReturns,
			Users:            cfg.Cache.Users,
		},
	}
	ws := usecase.NewWorkspace(deps, session.NewHolder(token))
	return &Runtime{
		Workspace: ws,
		Formatter: table.NewFormatter(cfg.Table.Locale, cfg.Table.Timezone),
		Close: func() {
			ws.Close()
			closeRepo()
		},
	}, nil
}

// env estado compartido por los subcomandos.
type env struct {
	opts *RootOptions
	open Opener
}

func (e *env) output(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    e.opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   e.opts.Verbose,
	}
}

// run abre el Runtime, ejecuta fn y lo cierra.
func (e *env) run(cmd *cobra.Command, fn func(ctx context.Context, rt *Runtime, out *OutputFormatter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := e.open(ctx, e.opts.Token, e.opts.Verbose, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(ctx, rt, e.output(cmd))
}
