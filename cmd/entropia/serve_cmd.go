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

	"github.com/ckacy01/entropia"
	"github.com/ckacy01/entropia/internal/api"
	"github.com/spf13/cobra"
)

type serveCmdConfig struct {
	*rootCmdConfig
	addr string
}

func serveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &serveCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis over HTTP",
		Long:  `Serve an HTTP API to generate, upload, keep and analyze datasets.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.loadConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.addr == "" {
				config.addr = cfg.Server.Addr
			}
			store, err := config.sessionStore(cfg)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			defer store.Close(context.Background())
			parallelism, _ := cfg.ParallelismLimit()
			maxInstances, _ := cfg.MaxInstanceCount()
			h := api.NewHandler(store, entropia.Options{Parallelism: parallelism}, maxInstances)
			srv := &http.Server{
				Addr:              config.addr,
				Handler:           api.NewRouter(h, cfg.Server.AllowedOrigins),
				ReadHeaderTimeout: 10 * time.Second,
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(sctx)
			}()
			log.Printf("Serving entropia API on %s", config.addr)
			if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "serving: %v\n", err)
				os.Exit(3)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.addr), "addr", "a", "", "address to listen on (defaults to the configured one, :8080)")
	return cmd
}
