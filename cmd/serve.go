package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"loyalty-sync/core/loader"
	"loyalty-sync/core/logger"
	"loyalty-sync/core/middleware/auth"
	"loyalty-sync/core/middleware/rayid"
	"loyalty-sync/feature/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd starts the admin HTTP surface.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin server for the failed-turnover queue",
	Long:  `Serves health, listing, clearing and retrying of the failed-turnover queue. Requires SERVER_API_KEY.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.log.Sync()
		logg := a.log

		if !a.cfg.Server.Enabled() {
			logg.Warn("SERVER_API_KEY is not set, the admin surface stays disabled")
			return nil
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// RayID first so every log line of a request carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/health"}}))

		mgr := loader.NewManager(logg)
		mgr.Register(admin.NewFeature(a.submitter, a.orch, map[string]admin.Check{
			"database": a.checkDatabase,
			"queue":    a.checkQueue,
		}, a.cfg.Server.ApiKey, logg))

		if _, err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
