package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	discordclient "github.com/pnotequalnp/thread-master/clients/discord"
	"github.com/pnotequalnp/thread-master/config"
	"github.com/pnotequalnp/thread-master/core/log"
	"github.com/pnotequalnp/thread-master/handlers"
	"github.com/pnotequalnp/thread-master/metrics"
	"github.com/pnotequalnp/thread-master/usecases/threads"
	"github.com/pnotequalnp/thread-master/utils"
)

type Options struct {
	LogLevel string `long:"log-level" env:"LOG_LEVEL" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Minimum level of log output"`
	EnvFile  string `long:"env-file" default:".env" description:"Dotenv file loaded before reading the environment"`

	Args struct {
		TokenFile string `positional-arg-name:"TOKEN_FILE" description:"File containing the bot token (falls back to DISCORD_TOKEN)"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.SetLevel(level)

	cfg, err := config.LoadConfig(config.LoadOptions{
		TokenFile: opts.Args.TokenFile,
		EnvFile:   opts.EnvFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error("❌ Client error: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig) error {
	if cfg.LockFile != "" {
		lock, err := utils.NewInstanceLock(cfg.LockFile)
		if err != nil {
			return err
		}
		if err := lock.TryLock(); err != nil {
			return err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				log.Warn("⚠️ Failed to release instance lock: %v", err)
			}
		}()
		log.Info("🔒 Acquired instance lock %s", lock.Path())
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewPrometheusRecorder(registry)

	discordClient := discordclient.NewDiscordClient(session)
	threadsUseCase := threads.NewThreadsUseCase(discordClient, cfg.Channels, cfg.Thread, recorder)
	discordHandler := handlers.NewDiscordEventsHandler(session, threadsUseCase, cfg.Workers)

	if err := discordHandler.StartBot(); err != nil {
		return err
	}
	defer func() {
		if err := discordHandler.StopBot(); err != nil {
			log.Warn("⚠️ %v", err)
		}
	}()

	serverErrs := make(chan error, 1)
	var server *http.Server
	if cfg.MetricsAddr != "" {
		router := mux.NewRouter()
		handlers.NewHTTPHandler(registry).SetupEndpoints(router)
		server = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           router,
			ReadHeaderTimeout: 30 * time.Second,
		}
		go func() {
			log.Info("✅ Serving metrics on http://%s/metrics", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErrs <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	return waitForShutdown(server, serverErrs)
}

func waitForShutdown(server *http.Server, serverErrs <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		log.Info("🛑 Shutdown signal received, cleaning up...")
	case runErr = <-serverErrs:
	}

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("❌ Metrics server shutdown error: %v", err)
		}
	}

	return runErr
}
