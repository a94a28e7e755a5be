package cmd

import (
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "pdx",
		Short:         "pdx: browse the Pokédex from the terminal",
		Long:          "pdx lists Pokémon, autocompletes names, and shows stats, abilities, sprites and type damage relations fetched from PokeAPI. It can also serve the same views as JSON over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env is fine.
			_ = godotenv.Load()

			if err := a.wire(opts.configPath, newLogger(cmd.ErrOrStderr(), opts.verbose)); err != nil {
				return fmt.Errorf("initialize pdx: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.pokedex/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newListCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newBrowseCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newServeCmd(a),
	)

	return rootCmd
}

// newLogger builds a production JSON logger writing to w.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core, zap.AddCaller())
}
