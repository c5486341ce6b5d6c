package main

import (
	"context"
	"fmt"
	"net"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Eswaramoorthy-2004/my-ecom-store/config"
	"github.com/Eswaramoorthy-2004/my-ecom-store/internal/kernel"
	"github.com/Eswaramoorthy-2004/my-ecom-store/internal/server"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/cache"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/database"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/session"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/storage"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/view"
	"github.com/Eswaramoorthy-2004/my-ecom-store/resources"
)

// storefront serve
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if uri := config.LogMongoURI(); uri != "" {
		closeSink, err := logger.AttachMongo(uri, config.LogMongoDB(), config.LogMongoCollection())
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		}
		defer closeSink()
	}

	db, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	store, err := cache.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("session store close failed", "driver", store.Driver(), "error", err)
		}
	}()
	logger.Info("session store ready", "driver", store.Driver())

	disks, err := storage.Connect(ctx)
	if err != nil {
		return err
	}

	views, err := view.New(resources.Views())
	if err != nil {
		return err
	}

	if config.SessionSecretIsDefault() && config.AppEnv() == "production" {
		logger.Warn("SESSION_SECRET is the built-in default; set it in production")
	}

	k := kernel.NewHTTPKernel(kernel.Deps{
		DB:        db,
		Sessions:  session.NewManager(store, session.DefaultOptions()),
		Views:     views,
		Storage:   disks,
		MaxUpload: config.MaxUploadBytes(),
	})

	return server.Start(ctx, net.JoinHostPort("", config.AppPort()), k.Handler())
}

// storefront route:list
var routeListCmd = &cobra.Command{
	Use:     "route:list",
	Aliases: []string{"routes"},
	Short:   "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		k := kernel.NewHTTPKernel(kernel.Deps{})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range k.Router().Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
