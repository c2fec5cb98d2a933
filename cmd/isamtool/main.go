/*
Command isamtool exercises isam collections from the command line.

	isamtool index FILE...        index documents and print the most frequent words
	isamtool lookup WORD FILE...  print all occurrences of a word
	isamtool dump                 print the tree structure of a collection
	isamtool stress               run random operations against a model

Settings are read from a YAML file (flag --config), e.g.

	lock_timeout: 2s
	strict: true
	top: 20
	color: auto
*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	conf := defaultConfig()
	root := &cobra.Command{
		Use:           "isamtool",
		Short:         "Inspect and exercise in-memory ISAM collections",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return nil
			}
			loaded, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			*conf = *loaded
			T().Debugf("isamtool: configuration loaded from %s", configPath)
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	root.AddCommand(
		newIndexCmd(conf),
		newLookupCmd(conf),
		newDumpCmd(conf),
		newStressCmd(conf),
	)
	return root
}
