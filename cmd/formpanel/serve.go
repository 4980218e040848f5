package main

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/piwi3910/FormPanel/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the optimizer over HTTP",
	Long: `Starts the HTTP API:
  POST /optimize          run an optimization
  POST /compare           compare candidate primaries
  POST /export/{format}   download xlsx, pdf, labels, csv, html or txt
  GET  /catalog           active catalog
  GET  /healthz           liveness`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: listen_addr from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	opt, err := newOptimizer()
	if err != nil {
		return err
	}
	addr := appConfig.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return server.New(opt, logger, appConfig.CompareWorkers).ListenAndServe(ctx, addr)
}
