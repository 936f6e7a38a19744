package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/michaelbrown/codeproxy/internal/compile"
	"github.com/michaelbrown/codeproxy/internal/storage"
)

var (
	languageFlag  string
	stdinFlag     string
	stdinFileFlag string
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a source file on Judge0 and print the output",
	Long: `Submit a source file and print the combined compile output, stderr
and stdout. The language defaults to the file extension.

Examples:
  codeproxy run hello.py
  codeproxy run main.c --language c --stdin "3 4"
  codeproxy run solve.go --stdin-file input.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Language name, alias or Judge0 id")
	runCmd.Flags().StringVar(&stdinFlag, "stdin", "", "Standard input for the program")
	runCmd.Flags().StringVar(&stdinFileFlag, "stdin-file", "", "Read standard input from a file")
	runCmd.MarkFlagsMutuallyExclusive("stdin", "stdin-file")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	lang := languageFlag
	if lang == "" {
		lang = strings.TrimPrefix(filepath.Ext(args[0]), ".")
	}
	langID, err := a.catalog.Resolve(lang)
	if err != nil {
		return fmt.Errorf("%w (try --language; known: %s)", err, strings.Join(a.catalog.Names(), ", "))
	}

	stdin := stdinFlag
	if stdinFileFlag != "" {
		data, err := os.ReadFile(stdinFileFlag)
		if err != nil {
			return fmt.Errorf("reading stdin file: %w", err)
		}
		stdin = string(data)
	}

	req := compile.Request{LanguageID: langID, SourceCode: string(source), Stdin: stdin}
	res, err := a.compiler.Compile(cmd.Context(), req)
	recordRun(cmd.Context(), a, req, res, err)
	if err != nil {
		logCompileError(a, err)
		return errors.New(compile.OutputOf(err))
	}

	fmt.Print(res.Output)
	return nil
}

// recordRun stores a terminal run in history when it is enabled. Failures
// here never affect the command.
func recordRun(ctx context.Context, a *app, req compile.Request, res *compile.Result, runErr error) {
	if !a.cfg.HistoryEnabled() {
		return
	}
	store, err := openStore(a.cfg)
	if err != nil {
		a.logger.Debug("opening history", zap.Error(err))
		return
	}
	defer store.Close()

	sub := storage.NewSubmission(uuid.New().String(), req, res, runErr)
	if err := store.RecordSubmission(ctx, sub); err != nil {
		a.logger.Debug("recording submission", zap.Error(err))
	}
}

// logCompileError records the cause behind the fixed caller-facing text.
func logCompileError(a *app, err error) {
	a.logger.Error("compile failed",
		zap.String("kind", string(compile.KindOf(err))),
		zap.Error(err),
	)
}
