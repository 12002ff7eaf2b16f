// Web server for the go-supplydemand chart
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-supplydemand/internal/config"
	"github.com/go-while/go-supplydemand/internal/web"
	"github.com/spf13/cobra"
)

var appVersion = "-unset-"

const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "supplydemand",
	Short: "Serve the interactive supply and demand chart",
	Long: "Serves the supply and demand chart page on /.\n" +
		"Set " + config.HostedEnv + " to a non-empty value on a hosting platform to listen on " +
		config.HostedHost + ":5000 with debug disabled.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

func main() {
	config.AppVersion = appVersion
	rootCmd.Version = appVersion

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("[WEB]: %v", err)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	serverConfig := config.ResolveConfig(os.Getenv)
	webConfig := config.DefaultWebConfig()
	log.Printf("Starting go-supplydemand: Web Server mode=%s debug=%t (version: %s)", serverConfig.Mode(), serverConfig.Debug, config.AppVersion)

	if serverConfig.Debug {
		gin.SetMode(gin.DebugMode)
		startProfiler(webConfig.ProfilerAddr)
		if w := startTemplateWatcher(webConfig.TemplateDir); w != nil {
			defer w.Stop()
		}
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	server := web.NewServer(serverConfig, webConfig, nil)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			webServerErrChan <- err
		}
	}()

	log.Printf("[WEB]: Listening on http://%s. Press Ctrl+C to shutdown...", serverConfig.Addr())

	select {
	case sig := <-sigChan:
		log.Printf("[WEB]: Received %s, initiating graceful shutdown...", sig)
	case err := <-webServerErrChan:
		return fmt.Errorf("failed to start web server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown web server: %w", err)
	}

	log.Printf("[WEB]: Graceful shutdown completed")
	return nil
}
