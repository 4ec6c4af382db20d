package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/crudnote/internal/api"
	"github.com/jon4hz/crudnote/internal/backend"
	"github.com/jon4hz/crudnote/internal/config"
	"github.com/jon4hz/crudnote/internal/controllers"
	"github.com/jon4hz/crudnote/internal/gravatar"
	"github.com/jon4hz/crudnote/internal/router"
	"github.com/jon4hz/crudnote/internal/scheduler"
	"github.com/jon4hz/crudnote/internal/static"
	"github.com/jon4hz/crudnote/internal/views"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CrudNote server",
	Long:  `Start the CrudNote server hosting the views and signing users in against the backend.`,
	Example: `crudnote serve --config config.yml
crudnote serve -c /path/to/config.yml --log-level debug
`,
	RunE: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}
	warnGravatar(cfg.Gravatar)

	loader, purger, err := newLoader(cfg)
	if err != nil {
		return err
	}

	r := router.New(router.DefaultTable(), loader)
	controllers.Register(r, backend.New(cfg.Backend), cfg.Gravatar)

	server, err := api.New(cfg, r, log.GetLevel() == log.DebugLevel)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	sched, err := scheduler.New()
	if err != nil {
		return err
	}
	if purger != nil {
		if err := sched.AddPurgeViewCacheJob(cfg.Views.CachePurgeSchedule, purger); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	g.Go(func() error {
		sched.Start()
		<-ctx.Done()
		return sched.Stop()
	})

	log.Info("crudnote started successfully", "backend", cfg.Backend.URL)
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("crudnote stopped")
	return nil
}

// newLoader builds the view loader from the configured source. The returned
// purger is nil when fragments are not cached.
func newLoader(cfg *config.Config) (views.Loader, scheduler.Purger, error) {
	var loader views.Loader
	switch {
	case cfg.Views.BaseURL != "":
		loader = views.NewHTTPLoader(cfg.Views.BaseURL, cfg.Backend.Timeout)
	case cfg.Views.Dir != "":
		loader = views.NewDirLoader(cfg.Views.Dir)
	default:
		loader = views.NewFSLoader(static.ViewsFS)
	}

	if !cfg.Views.CacheEnabled {
		return loader, nil, nil
	}
	c, err := views.NewCache(cfg.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create view cache: %w", err)
	}
	cached := views.NewCachedLoader(loader, c, cfg.Views.CacheTTL)
	return cached, cached, nil
}

func warnGravatar(cfg *config.GravatarConfig) {
	if cfg == nil || !cfg.Enabled {
		return
	}
	if !gravatar.IsValidDefaultImage(cfg.DefaultImage) {
		log.Warn("Unknown gravatar default image", "default_image", cfg.DefaultImage)
	}
	if !gravatar.IsValidRating(cfg.Rating) {
		log.Warn("Unknown gravatar rating", "rating", cfg.Rating)
	}
	if !gravatar.IsValidSize(cfg.Size) {
		log.Warn("Invalid gravatar size", "size", cfg.Size)
	}
}
