package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	. "github.com/alexdcox/radix-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type _config struct {
	DatabasePath string `json:"databasepath"`
	GatewayUrl   string `json:"gatewayurl"`
	Network      string `json:"network"`
	RpcHostPort  string `json:"rpchostport"`
	LogLevel     string `json:"loglevel"`
	WatchStream  bool   `json:"watchstream"`
}

func (c *_config) Load() (err error) {
	flag.StringVar(&c.DatabasePath, "databasepath", "radix-rpc.db", "Path to the radix-go sqlite auth store")
	flag.StringVar(&c.GatewayUrl, "gatewayurl", "", "Override the gateway url (default: the network's public gateway)")
	flag.StringVar(&c.Network, "network", "mainnet", "Set network (mainnet|stokenet|localnet)")
	flag.StringVar(&c.RpcHostPort, "rpchostport", "localhost:3002", "Set host:port for the http/rpc listener")
	flag.StringVar(&c.LogLevel, "loglevel", "", "Set the log level (trace|debug|info|warn|error|fatal) Can also be set via the RADIX_RPC_LOG_LEVEL environment variable")
	flag.BoolVar(&c.WatchStream, "watchstream", false, "Follow the transaction stream and log committed transactions")
	flag.Parse()

	return
}

var log = Logger()

var config *_config

func main() {
	config = &_config{}

	if err := config.Load(); err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	if config.LogLevel == "" {
		envLogLevel := os.Getenv("RADIX_RPC_LOG_LEVEL")
		if envLogLevel != "" {
			config.LogLevel = envLogLevel
		} else {
			config.LogLevel = "info"
		}
	}
	logLevel, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatal().Msgf("%+v", errors.WithStack(err))
	}

	log.Info().Msgf("setting log level to: '%s'", logLevel)
	zerolog.SetGlobalLevel(logLevel)

	store, err := NewSqliteAuthStore(config.DatabasePath)
	if err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	client, err := NewClient(&ClientOptions{
		Network:    Network(config.Network),
		GatewayUrl: config.GatewayUrl,
	})
	if err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	var watcher *StreamWatcher
	if config.WatchStream {
		status, err2 := client.GetLedgerStatus()
		if err2 != nil {
			log.Fatal().Msgf("%+v", err2)
		}

		watcher = client.WatchTransactionStream(status.LedgerState.StateVersion, 0)
		watcher.OnTransaction(func(tx TransactionInfo) {
			log.Info().Msgf("committed transaction %s at state version %d", tx.IntentHash, tx.StateVersion)
		})
		watcher.Start()
	}

	httpServer, err := NewHttpRpcServer(config, store, client)
	if err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	go func() {
		if err = httpServer.Start(); err != nil {
			log.Fatal().Msgf("%+v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	log.Info().Msg("caught interrupt/terminate signal, attempting graceful shutdown...")

	if watcher != nil {
		watcher.Stop()
	}

	if err = httpServer.Stop(); err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	if err = store.Close(); err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	log.Info().Msg("graceful shutdown complete")
}
