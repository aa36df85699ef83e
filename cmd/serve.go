package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vk4tech/passbot/internal/audit"
	"github.com/vk4tech/passbot/internal/config"
	"github.com/vk4tech/passbot/internal/db"
	"github.com/vk4tech/passbot/internal/directory"
	"github.com/vk4tech/passbot/internal/gateway"
	"github.com/vk4tech/passbot/internal/mailer"
	"github.com/vk4tech/passbot/internal/server"
	"github.com/vk4tech/passbot/internal/webhook"
)

var (
	servePort     int
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long: `Starts the passbot HTTP server: the WhatsApp webhook endpoint plus the
operator API for visitor lookup and the delivery log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("allow-all") {
			cfg.Server.AllowAll = serveAllowAll
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		database, err := db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAll,
		})

		registerAllRoutes(srv, cfg, database)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "passbot v%s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.Database)
		if cfg.Mail.APIKey == "" {
			fmt.Fprintln(os.Stderr, "  Email delivery: disabled (no mail API key)")
		}

		return srv.Start()
	},
}

// registerAllRoutes wires up the webhook and the operator API.
func registerAllRoutes(srv *server.Server, cfg *config.Config, database *db.DB) {
	r := srv.Router()

	visitorStore := directory.NewStore(database)
	directory.RegisterRoutes(r, visitorStore)

	auditStore := audit.NewStore(database)
	audit.RegisterRoutes(r, auditStore)

	messenger := gateway.New(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.PhoneNumberID)

	var mailSender mailer.Sender
	if cfg.Mail.APIKey != "" {
		mailSender = mailer.New(cfg.Mail.Endpoint, cfg.Mail.APIKey)
	}

	deliverer := webhook.NewDeliverer(messenger, mailSender, cfg.Mail)
	dispatcher := webhook.NewDispatcher(cfg.Gateway.PhoneNumberID, visitorStore, messenger, deliverer, auditStore)
	webhook.NewHandler(cfg, dispatcher).RegisterRoutes(r)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all", false, "Allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
