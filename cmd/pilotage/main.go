// Command pilotage runs the UDP reverse proxy with a static YAML
// configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/ipfs/go-log/v2"

	"github.com/pilotage-io/pilotage/pkg/cluster"
	"github.com/pilotage-io/pilotage/pkg/config"
	"github.com/pilotage-io/pilotage/pkg/proxy"

	// Registered filters.
	_ "github.com/pilotage-io/pilotage/pkg/filters/capture"
	_ "github.com/pilotage-io/pilotage/pkg/filters/tokenrouter"
)

var log = logging.Logger("pilotage")

func main() {
	configPath := flag.String("config", "pilotage.yaml", "path to the proxy configuration file")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	if err := run(*configPath, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logLevel string) error {
	level, err := logging.LevelFromString(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logging.SetAllLoggers(level)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	chain, err := cfg.NewChain()
	if err != nil {
		return err
	}
	clusterMap, err := cfg.NewClusterMap()
	if err != nil {
		return err
	}

	clusters := cluster.NewHolder()
	clusters.Store(clusterMap)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := proxy.New(cfg.Port, clusters, chain)
	log.Infow("starting", "id", cfg.ID, "port", cfg.Port)
	return p.Serve(ctx)
}
