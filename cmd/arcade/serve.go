package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/hue-arcade/internal/platform/tui"
	"github.com/vovakirdan/hue-arcade/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagStaticDir   string
	flagCatalogFile string
	flagEnvFile     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH and HTTP servers",
	Long: `Start an SSH server that allows users to connect and play games,
and optionally an HTTP server for the web catalog and static game pages.

Each SSH connection gets their own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

The HTTP server starts when --http or --static is given, or when PORT is
set in the environment or the .env file. It serves:
  /games.json   - Game catalog (?q= filters by name)
  /games/<id>/  - Static game pages
  /assets/      - Thumbnails
  /             - Home page

Examples:
  arcade serve                           # SSH on :23234 with auto-generated key
  arcade serve --ssh :2222               # SSH on port 2222
  arcade serve --http :3000              # SSH plus HTTP on port 3000
  arcade serve --ssh "" --http :8080     # HTTP only
  arcade serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty disables SSH)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (default :$PORT or :"+web.DefaultPort+")")
	serveCmd.Flags().StringVar(&flagStaticDir, "static", web.DefaultConfig().StaticDir, "Directory with home/, games/ and assets/")
	serveCmd.Flags().StringVar(&flagCatalogFile, "catalog", "", "Extra games.json merged into the catalog")
	serveCmd.Flags().StringVar(&flagEnvFile, "env", ".env", "Environment file to load")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default 30)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := web.LoadEnv(flagEnvFile); err != nil {
		return err
	}

	_, hasPort := os.LookupEnv("PORT")
	wantHTTP := cmd.Flags().Changed("http") || cmd.Flags().Changed("static") || hasPort
	if flagSSHAddr == "" && !wantHTTP {
		return errors.New("nothing to serve: SSH is disabled and no HTTP address was given")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.DBPath = flagDBPath
		if flagIdleTimeout > 0 {
			sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		}
		sshServer, err := tui.NewSSHServer(sshCfg)
		if err != nil {
			return err
		}
		logger.Info("connect with: ssh localhost -p <port>", "address", sshServer.Addr())
		g.Go(func() error { return sshServer.Run(ctx) })
	}

	if wantHTTP {
		httpServer, err := web.NewServer(web.Config{
			Address:     web.ResolveAddress(flagHTTPAddr),
			StaticDir:   flagStaticDir,
			CatalogPath: flagCatalogFile,
		})
		if err != nil {
			return err
		}
		logger.Debug("catalog loaded", "games", len(httpServer.Entries()))
		g.Go(func() error { return httpServer.Run(ctx) })
	}

	logger.Info("press Ctrl+C to stop")
	return g.Wait()
}
