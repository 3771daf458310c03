package main

import (
	"context"
	goflag "flag"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

var (
	ConfigFile string
	Verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "rscanner",
	Short:         "rscanner, pattern based vulnerability scanner for rust smart contracts",
	Long:          "",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(*cobra.Command, []string) {
		setupLogging(Verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "config file (default ~/.rscanner/config.yaml and ./.rscanner/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "print debug logs")
}

func setupLogging(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	rootCmd.AddCommand(versionCommand)
	rootCmd.AddCommand(scanCommand)
	rootCmd.AddCommand(checklistCommand)
	rootCmd.AddCommand(catalogCommand)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
