package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/michaelbrown/codeproxy/internal/compile"
)

var replLanguageFlag string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Write and run programs interactively",
	Long: `Start an interactive buffer. Lines you type are appended to the
program; :run submits it to Judge0.

Examples:
  codeproxy repl --language python
  codeproxy repl -l 54`,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().StringVarP(&replLanguageFlag, "language", "l", "python", "Language name, alias or Judge0 id")
	rootCmd.AddCommand(replCmd)
}

// replSession is the program being edited.
type replSession struct {
	langID int
	lines  []string
	stdin  string
}

func (s *replSession) source() string {
	if len(s.lines) == 0 {
		return ""
	}
	return strings.Join(s.lines, "\n") + "\n"
}

func runRepl(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	langID, err := a.catalog.Resolve(replLanguageFlag)
	if err != nil {
		return err
	}
	langName := replLanguageFlag
	if l, ok := a.catalog.ByID(langID); ok {
		langName = l.Name
	}

	fmt.Printf("codeproxy - %s\n", langName)
	if !a.compiler.Configured() {
		fmt.Printf("\033[33mwarning: RAPIDAPI_KEY is not set\033[0m\n")
	}
	fmt.Printf("Type :help for commands, :quit to exit\n\n")

	home, _ := os.UserHomeDir()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36m>>>\033[0m ",
		HistoryFile:     filepath.Join(home, ".codeproxy", "repl_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	// Ctrl+C while a submission is in flight cancels it, not the session.
	var current inflight
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			current.cancel()
		}
	}()

	sess := &replSession{langID: langID}
	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}

		if !strings.HasPrefix(strings.TrimSpace(input), ":") {
			sess.lines = append(sess.lines, input)
			continue
		}

		if handleReplCommand(strings.TrimSpace(input), sess) {
			return nil
		}
		if strings.TrimSpace(input) != ":run" {
			continue
		}

		ctx := current.start()
		req := compile.Request{LanguageID: sess.langID, SourceCode: sess.source(), Stdin: sess.stdin}
		res, err := a.compiler.Compile(ctx, req)
		interrupted := ctx.Err() != nil
		current.finish()

		recordRun(context.Background(), a, req, res, err)
		switch {
		case interrupted:
			fmt.Println("(interrupted)")
		case err != nil:
			logCompileError(a, err)
			fmt.Printf("\033[31m%s\033[0m\n", compile.OutputOf(err))
		default:
			fmt.Print(res.Output)
			if res.Status.Description != "" {
				fmt.Printf("\033[90m[%s", res.Status.Description)
				if res.Time != "" {
					fmt.Printf(" %ss", res.Time)
				}
				fmt.Printf("]\033[0m\n")
			}
		}
		fmt.Println()
	}
}

// inflight holds the cancel func of the running submission, shared between
// the input loop and the signal goroutine.
type inflight struct {
	mu sync.Mutex
	fn context.CancelFunc
}

// start returns a context for a new submission.
func (f *inflight) start() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	f.mu.Lock()
	f.fn = cancel
	f.mu.Unlock()
	return ctx
}

// finish releases the current submission's context.
func (f *inflight) finish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fn != nil {
		f.fn()
		f.fn = nil
	}
}

// cancel interrupts the running submission, if any.
func (f *inflight) cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fn != nil {
		f.fn()
	}
}

// handleReplCommand applies a colon command and reports whether to exit.
// :run is left to the caller.
func handleReplCommand(input string, sess *replSession) bool {
	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":exit", ":q":
		fmt.Println("Goodbye!")
		return true
	case ":run":
	case ":clear":
		sess.lines = nil
		fmt.Println("Buffer cleared.")
	case ":show":
		if len(sess.lines) == 0 {
			fmt.Println("(empty)")
		}
		for i, line := range sess.lines {
			fmt.Printf("\033[90m%3d\033[0m %s\n", i+1, line)
		}
		if sess.stdin != "" {
			fmt.Printf("\033[90mstdin:\033[0m %q\n", sess.stdin)
		}
	case ":stdin":
		sess.stdin = strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
		if sess.stdin != "" {
			sess.stdin += "\n"
		}
		fmt.Printf("stdin set to %q\n", sess.stdin)
	case ":help":
		fmt.Println("Commands:")
		fmt.Println("  :run          - Submit the buffer")
		fmt.Println("  :stdin <text> - Set standard input (empty clears it)")
		fmt.Println("  :show         - Print the buffer")
		fmt.Println("  :clear        - Empty the buffer")
		fmt.Println("  :quit         - Exit")
	default:
		fmt.Printf("Unknown command: %s (try :help)\n", input)
	}
	return false
}
