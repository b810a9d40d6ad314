package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepgram/siplog/internal/logging"
	"github.com/deepgram/siplog/internal/output"
	"github.com/deepgram/siplog/internal/parser"
	"github.com/deepgram/siplog/internal/stream"
)

var (
	verbosity int
	noColor   bool
)

// rootCmd is the whole CLI: no subcommands, no required arguments.
var rootCmd = &cobra.Command{
	Use:   "siplog",
	Short: "siplog — log line normalizer",
	Long: `Siplog reads log lines from stdin and re-emits each one in a single
canonical colorized form, inferring severity, timestamp, and source
location from free text or from bunyan-style JSON records.

Examples:
  my-server 2>&1 | siplog
  tail -f app.log | siplog -vv
  node server.js | siplog --no-color`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase diagnostic verbosity (repeatable)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colorized output")
}

func initConfig() {
	viper.SetEnvPrefix("siplog")
	viper.AutomaticEnv()

	if viper.GetBool("no_color") {
		noColor = true
	}
}

func run(cmd *cobra.Command, args []string) error {
	logging.FromVerbosity(verbosity)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var renderer output.Renderer
	if noColor {
		renderer = output.NewPlainRenderer()
	} else {
		renderer = output.NewTextRenderer()
	}

	pump := stream.New(parser.NewNormalizeParser(), renderer)
	return pump.Run(ctx, os.Stdin)
}
