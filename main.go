package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/homeshelf/homeshelf/api/v1"
	"github.com/homeshelf/homeshelf/config"
	"github.com/homeshelf/homeshelf/library"
	"github.com/homeshelf/homeshelf/log"
	"github.com/homeshelf/homeshelf/lookup"
	"github.com/homeshelf/homeshelf/server"
	"github.com/homeshelf/homeshelf/store"
	"github.com/homeshelf/homeshelf/store/db"
	"github.com/homeshelf/homeshelf/worker"
)

const (
	greetingBanner = `
██   ██  ██████  ███    ███ ███████ ███████ ██   ██ ███████ ██      ███████
██   ██ ██    ██ ████  ████ ██      ██      ██   ██ ██      ██      ██
███████ ██    ██ ██ ████ ██ █████   ███████ ███████ █████   ██      █████
██   ██ ██    ██ ██  ██  ██ ██           ██ ██   ██ ██      ██      ██
██   ██  ██████  ██      ██ ███████ ███████ ██   ██ ███████ ███████ ██
`
)

var (
	configFile string
	host       string
	port       int
	data       string

	rootCmd = &cobra.Command{
		Use:   "homeshelf",
		Short: "Homeshelf is a personal library tracker",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			d, err := db.NewDB(config.Opts.DSN)
			if err != nil {
				log.Error("Error opening database", zap.Error(err))
				return
			}
			defer d.Close()
			if err := d.Migrate(ctx); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			s := store.NewStore(d)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			// Load books, then loans; a corrupt collection fails startup
			// instead of risking a write that destroys the rest.
			lib := library.New(s)
			if err := lib.Load(); err != nil {
				log.Error("Error loading library state", zap.Error(err))
				return
			}

			lookupTimeout := time.Duration(config.Opts.LookupTimeout) * time.Second
			client := lookup.NewClient(config.Opts.LookupEndpoint, lookupTimeout)
			guard := &lookup.Guard{}
			cache := lookup.NewCache()
			pool := worker.NewLookupPool(client, guard, cache, lookupTimeout, config.Opts.LookupPoolSize)

			handler := v1.NewHandler(lib, client, guard, cache, pool)
			srv := server.StartServer(s, handler)
			log.Info("Server started",
				zap.String("host", config.Opts.Host),
				zap.Int("port", config.Opts.Port),
				zap.String("data", config.Opts.Data))

			<-ctx.Done()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx, srv); err != nil {
				log.Error("Error shutting down server", zap.Error(err))
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "host to listen on")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&data, "data", "", "data directory")

	cobra.OnInitialize(func() {
		if _, err := config.GetConfig(); err != nil {
			fmt.Println("Error loading config:", err)
			os.Exit(1)
		}
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				fmt.Println("Error parsing config file:", err)
				os.Exit(1)
			}
		}
		// Flags win over the config file
		if host != "" {
			config.Opts.Host = host
		}
		if port != 0 {
			config.Opts.Port = port
		}
		if data != "" {
			config.Opts.Data = data
			config.Opts.DSN = filepath.Join(data, "homeshelf.db")
		}

		log.Logger = log.NewLogger()
	})
}

func main() {
	fmt.Print(greetingBanner)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Logger.Sync()
}
