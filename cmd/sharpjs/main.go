package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var verbosity int
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "sharpjs",
		Short:         "Translate C# declarations to JavaScript",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbosity, logFile)
		},
	}

	addGlobalFlags(rootCmd.PersistentFlags(), &verbosity, &logFile)

	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newModelCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newGrammarCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGlobalFlags(flags *pflag.FlagSet, verbosity *int, logFile *string) {
	flags.CountVarP(verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(logFile, "log-file", "", "write logs to this file instead of stderr")
}

func configureLogging(verbosity int, logFile string) {
	if logFile == "" {
		commonlog.Configure(verbosity, nil)
		return
	}
	commonlog.Configure(verbosity, &logFile)
}
