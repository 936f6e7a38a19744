package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFlag  string
	envFileFlag string
)

var rootCmd = &cobra.Command{
	Use:   "codeproxy",
	Short: "codeproxy - Judge0 compile proxy",
	Long: `codeproxy forwards code-execution requests to Judge0 CE on RapidAPI,
keeping the API key on the server.

It serves the browser playground API, and can also run files or an
interactive session straight from the terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: ./codeproxy.yaml or ~/.codeproxy/codeproxy.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "Env file loaded before config (default: .env)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
