package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/fairdraw/internal/cliconfig"
	"github.com/bft-labs/fairdraw/pkg/beacon"
	"github.com/bft-labs/fairdraw/pkg/draw"
	"github.com/bft-labs/fairdraw/pkg/entropy"
	"github.com/bft-labs/fairdraw/pkg/log"
)

const helpDescription = `
Pick a winner deterministically and verifiably from a public randomness beacon.

Highlights:
  - Deterministic: the same round and entrant count always yield the same winner.
  - Verifiable: anyone can re-fetch the round and recompute the draw.
  - Unbiased: rejection sampling removes modulo bias from the selection.
  - Offline fallback: --local draws from the system CSPRNG (not verifiable).
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  fairdraw --entrants 150 --round 4173492
  fairdraw --entrants 25 --local
  fairdraw info
  fairdraw watch --config draw.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zl := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "fairdraw",
		Short:   "Pick a winner deterministically and verifiably from a public randomness beacon",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return runDraw(ctx, cfg, zl)
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print beacon chain information (diagnostic)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			client := newBeaconClient(cfg, zl)
			info, err := client.Info(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("public key:   %s\n", info.PublicKey)
			fmt.Printf("period:       %ds\n", info.Period)
			fmt.Printf("genesis time: %d\n", info.GenesisTime)
			fmt.Printf("chain hash:   %s\n", info.Hash)
			if info.SchemeID != "" {
				fmt.Printf("scheme:       %s\n", info.SchemeID)
			}
			return nil
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the draw whenever the config file changes",
		Long: strings.TrimSpace(`
Watch the config file and re-run the draw on every change, printing the
transcript each time. Useful while curating the entrant count or round
ahead of a live drawing.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgPath
			if path == "" {
				path = cliconfig.DefaultConfigPath()
			}
			if path == "" || !cliconfig.FileExists(path) {
				return fmt.Errorf("watch requires an existing config file (see --config)")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			changed := changedFlags(cmd)
			w := cliconfig.NewWatcher(path, func() {
				run := cliconfig.DefaultConfig()
				fc, err := cliconfig.LoadFileConfig(path)
				if err != nil {
					zl.Error().Err(err).Msg("load config")
					return
				}
				if err := cliconfig.ApplyFileConfig(&run, fc, changed); err != nil {
					zl.Error().Err(err).Msg("apply config")
					return
				}
				if err := cliconfig.ApplyEnvConfig(&run, changed); err != nil {
					zl.Error().Err(err).Msg("apply env")
					return
				}
				if err := run.Validate(); err != nil {
					zl.Error().Err(err).Msg("invalid config")
					return
				}
				if err := runDraw(ctx, run, zl); err != nil {
					zl.Error().Err(err).Msg("draw failed")
				}
			})

			zl.Info().Str("path", path).Msg("watching config")
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	root.AddCommand(infoCmd, watchCmd)

	// Flags
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.fairdraw/config.toml)")
	root.PersistentFlags().StringVar(&cfg.BeaconURL, "beacon-url", cfg.BeaconURL, "beacon base URL")
	root.PersistentFlags().StringVar(&cfg.Chain, "chain", cfg.Chain, "chain identifier path segment (empty to query the base URL as-is)")
	root.PersistentFlags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout per attempt")
	root.PersistentFlags().IntVar(&cfg.Retries, "retries", cfg.Retries, "retries for transient beacon failures")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")

	root.Flags().IntVarP(&cfg.Entrants, "entrants", "n", cfg.Entrants, "number of entrants in the draw")
	root.Flags().StringVar(&cfg.Round, "round", cfg.Round, "beacon round to draw from")
	root.Flags().BoolVar(&cfg.Local, "local", cfg.Local, "use local system randomness instead of the beacon (not verifiable)")

	if err := root.Execute(); err != nil {
		zl.Error().Err(err).Msg("fairdraw")
		os.Exit(1)
	}
}

// loadConfig layers file and environment configuration under any flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := changedFlags(cmd)

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	return cliconfig.ApplyEnvConfig(cfg, changed)
}

// changedFlags builds the set of flags the user set explicitly.
func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	return changed
}

// newBeaconClient builds the shared beacon client from CLI configuration.
func newBeaconClient(cfg cliconfig.Config, zl zerolog.Logger) *beacon.Client {
	return beacon.NewClient(cfg.BeaconURL,
		beacon.WithChain(cfg.Chain),
		beacon.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		beacon.WithRetries(cfg.Retries),
		beacon.WithLogger(newLogger(cfg, zl)))
}

// newLogger adapts the CLI zerolog logger for the library, honoring
// --verbose.
func newLogger(cfg cliconfig.Config, zl zerolog.Logger) log.Logger {
	if !cfg.Verbose {
		zl = zl.Level(zerolog.WarnLevel)
	}
	return log.NewZerologAdapterWithLogger(zl)
}

// runDraw performs one draw with the given configuration and prints the
// transcript to stdout.
func runDraw(ctx context.Context, cfg cliconfig.Config, zl zerolog.Logger) error {
	var source entropy.Source
	if cfg.Local {
		source = entropy.NewLocalSource()
	} else {
		source = entropy.NewBeaconSource(newBeaconClient(cfg, zl))
	}

	drawer, err := draw.New(source, draw.WithLogger(newLogger(cfg, zl)))
	if err != nil {
		return err
	}

	res, err := drawer.Draw(ctx, cfg.Entrants, beacon.Round(cfg.Round))
	if err != nil {
		return err
	}

	if cfg.Local {
		fmt.Println("source:      local system randomness (not verifiable)")
	} else {
		fmt.Printf("beacon:      %s\n", cfg.BeaconURL)
		fmt.Printf("round:       %s\n", res.Round)
	}
	fmt.Printf("randomness:  %s\n", hex.EncodeToString(res.Randomness))
	fmt.Printf("algorithm:   %s\n", res.Algorithm)
	fmt.Printf("entrants:    %d\n", res.Entrants)
	fmt.Printf("winner:      %d\n", res.Winner)
	return nil
}
