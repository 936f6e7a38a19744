package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaelbrown/codeproxy/internal/languages"
	"github.com/michaelbrown/codeproxy/internal/storage"
)

var (
	outcomeFilter string
	limitFlag     int
	exportFormat  string
	exportOutput  string
	forceFlag     bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "Inspect recorded submissions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded submissions",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <submission-id>",
	Short: "Show a submission's source and output",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <submission-id>",
	Short: "Delete a submission",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <submission-id>",
	Short: "Export a submission as markdown or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyExportCmd)

	historyListCmd.Flags().StringVar(&outcomeFilter, "outcome", "", "Filter by outcome (ok, misconfigured, upstream_error, transport_error)")
	historyListCmd.Flags().IntVar(&limitFlag, "limit", 20, "Max submissions to show")

	historyExportCmd.Flags().StringVar(&exportFormat, "format", "md", "Export format: md or json")
	historyExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")

	historyDeleteCmd.Flags().BoolVar(&forceFlag, "force", false, "Skip confirmation")
}

func openHistory() (storage.Store, *languages.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	catalog, err := languages.Load(cfg.Languages.File)
	if err != nil {
		return nil, nil, fmt.Errorf("loading languages: %w", err)
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return store, catalog, nil
}

func languageName(catalog *languages.Catalog, id int) string {
	if l, ok := catalog.ByID(id); ok {
		return l.Name
	}
	return ""
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, catalog, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	subs, err := store.ListSubmissions(context.Background(), storage.ListOptions{
		Outcome: storage.Outcome(outcomeFilter),
		Limit:   limitFlag,
	})
	if err != nil {
		return err
	}

	if len(subs) == 0 {
		fmt.Println("No submissions found.")
		return nil
	}

	fmt.Printf("%-10s %-16s %-22s %-40s %s\n", "ID", "OUTCOME", "LANGUAGE", "OUTPUT", "CREATED")
	fmt.Println(strings.Repeat("─", 100))

	for _, s := range subs {
		lang := languageName(catalog, s.LanguageID)
		if lang == "" {
			lang = fmt.Sprintf("#%d", s.LanguageID)
		}
		if len(lang) > 20 {
			lang = lang[:20] + ".."
		}

		output := strings.ReplaceAll(truncate(s.Output, 36), "\n", " ")
		if output == "" {
			output = "(no output)"
		}

		fmt.Printf("%-10s %-16s %-22s %-40s %s\n",
			shortID(s.ID), s.Outcome, lang, output, timeAgo(s.CreatedAt))
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, catalog, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	sub, err := store.GetSubmission(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Submission: %s\n", sub.ID)
	if name := languageName(catalog, sub.LanguageID); name != "" {
		fmt.Printf("Language:   %s (%d)\n", name, sub.LanguageID)
	} else {
		fmt.Printf("Language:   %d\n", sub.LanguageID)
	}
	fmt.Printf("Outcome:    %s\n", sub.Outcome)
	if sub.Status != "" {
		fmt.Printf("Status:     %s\n", sub.Status)
	}
	fmt.Printf("Duration:   %dms\n", sub.DurationMS)
	fmt.Printf("Created:    %s\n", sub.CreatedAt.Format(time.RFC3339))

	fmt.Printf("\n\033[36msource\033[0m\n%s\n", strings.Repeat("─", 60))
	fmt.Println(strings.TrimRight(sub.SourceCode, "\n"))
	if sub.Stdin != "" {
		fmt.Printf("\n\033[36mstdin\033[0m\n%s\n", strings.Repeat("─", 60))
		fmt.Println(strings.TrimRight(sub.Stdin, "\n"))
	}
	fmt.Printf("\n\033[32moutput\033[0m\n%s\n", strings.Repeat("─", 60))
	fmt.Println(strings.TrimRight(sub.Output, "\n"))

	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	store, _, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	sub, err := store.GetSubmission(ctx, args[0])
	if err != nil {
		return err
	}

	if !forceFlag {
		fmt.Printf("Delete submission %s - %q? [y/N] ", shortID(sub.ID), truncate(sub.SourceCode, 40))
		var confirm string
		fmt.Scanln(&confirm)
		if strings.ToLower(confirm) != "y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := store.DeleteSubmission(ctx, sub.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted submission %s\n", shortID(sub.ID))
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, catalog, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	sub, err := store.GetSubmission(context.Background(), args[0])
	if err != nil {
		return err
	}

	var output string
	switch exportFormat {
	case "json":
		data, err := storage.ExportJSON(sub)
		if err != nil {
			return err
		}
		output = string(data) + "\n"
	default:
		output = storage.ExportMarkdown(sub, languageName(catalog, sub.LanguageID))
	}

	if exportOutput != "" {
		return os.WriteFile(exportOutput, []byte(output), 0o644)
	}

	fmt.Print(output)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
