package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charlesng35/codeshelf/internal/client"
	"github.com/charlesng35/codeshelf/internal/models"
	"github.com/charlesng35/codeshelf/internal/search"
	"github.com/charlesng35/codeshelf/internal/tui"
)

func newListCmd(opts *options) *cobra.Command {
	var criteria search.Criteria

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snippets, optionally filtered and searched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.client()
			if err != nil {
				return err
			}
			snippets, err := store.ListSnippets(cmd.Context(), client.SnippetQuery{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writeResults(out, outputStyles(useColor(opts.color, out)), search.Filter(snippets, criteria), criteria.Term)
			return nil
		},
	}

	cmd.Flags().StringVarP(&criteria.Term, "search", "s", "", "Search title, description, code and tags")
	cmd.Flags().StringVarP(&criteria.Language, "language", "l", "", "Filter by language (substring)")
	cmd.Flags().StringVarP(&criteria.Category, "category", "c", "", "Filter by category id")
	return cmd
}

// writeResults prints the result summary followed by one block per snippet. With a search
// term each block lists the matching code lines.
func writeResults(out io.Writer, styles tui.Styles, results []models.Snippet, term string) {
	stats := search.Summarize(results, term)
	summary := fmt.Sprintf("%d snippets · %d languages · %d categories", stats.Snippets, stats.Languages, stats.Categories)
	if term != "" {
		summary = fmt.Sprintf("%d snippets · %d matches · %d languages · %d categories",
			stats.Snippets, stats.Matches, stats.Languages, stats.Categories)
	}
	fmt.Fprintln(out, styles.Muted.Render(summary))

	if len(results) == 0 {
		fmt.Fprintln(out, "No snippets match.")
		return
	}

	for _, snippet := range results {
		fmt.Fprintln(out)
		header := fmt.Sprintf("%s %s %s",
			styles.Muted.Render(fmt.Sprintf("#%d", snippet.ID)),
			styles.Header.Render(tui.HighlightText(styles, snippet.Title, term)),
			styles.Muted.Render(fmt.Sprintf("[%s · %s]", snippet.Language, snippet.Category.Name)),
		)
		fmt.Fprintln(out, header)
		if tags := snippet.TagNames(); len(tags) > 0 {
			fmt.Fprintln(out, "      "+styles.Muted.Render("tags: "+strings.Join(tags, ", ")))
		}
		if term == "" {
			continue
		}

		for _, match := range search.CodeMatches(snippet.Code, term) {
			fmt.Fprintf(out, "%s  %s\n", styles.LineNo.Render(fmt.Sprint(match.Line)), tui.HighlightText(styles, match.Content, term))
		}
	}
}

func newShowCmd(opts *options) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			store, err := opts.client()
			if err != nil {
				return err
			}
			snippet, err := store.GetSnippet(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				_, err = io.WriteString(out, snippet.Code)
				return err
			}
			rendered, err := renderMarkdown(snippetMarkdown(*snippet), useColor(opts.color, out), terminalWidth(out))
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the code")
	return cmd
}

// snippetFlags binds the editable snippet fields to flags.
type snippetFlags struct {
	title       string
	description string
	language    string
	code        string
	file        string
	category    uint
	tags        []uint
	clearTags   bool
	clearDesc   bool
}

func (f *snippetFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.title, "title", "t", "", "Snippet title")
	flags.StringVarP(&f.description, "description", "d", "", "Snippet description")
	flags.StringVarP(&f.language, "language", "l", "", "Snippet language")
	flags.StringVar(&f.code, "code", "", "Snippet code")
	flags.StringVarP(&f.file, "file", "f", "", `Read code from a file ("-" for stdin)`)
	flags.UintVarP(&f.category, "category", "c", 0, "Category id")
	flags.UintSliceVar(&f.tags, "tags", nil, "Tag ids, comma separated")
	cmd.MarkFlagsMutuallyExclusive("code", "file")
}

// readCode returns the code from --code or --file and whether either was given.
func (f *snippetFlags) readCode(cmd *cobra.Command) (string, bool, error) {
	switch {
	case cmd.Flags().Changed("code"):
		return f.code, true, nil
	case f.file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), true, err
	case f.file != "":
		data, err := os.ReadFile(f.file)
		if err != nil {
			return "", false, fmt.Errorf("read code: %w", err)
		}
		return string(data), true, nil
	default:
		return "", false, nil
	}
}

func newCreateCmd(opts *options) *cobra.Command {
	flags := &snippetFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a snippet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, ok, err := flags.readCode(cmd)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("one of --code or --file is required")
			}

			input := client.CreateSnippet{
				Title:      flags.title,
				Language:   flags.language,
				Code:       code,
				CategoryID: flags.category,
				TagIDs:     flags.tags,
			}
			if cmd.Flags().Changed("description") {
				input.Description = &flags.description
			}

			store, err := opts.client()
			if err != nil {
				return err
			}
			snippet, err := store.CreateSnippet(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created snippet #%d %q\n", snippet.ID, snippet.Title)
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newUpdateCmd(opts *options) *cobra.Command {
	flags := &snippetFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var input client.UpdateSnippet
			changed := cmd.Flags().Changed
			if changed("title") {
				input.Title = &flags.title
			}
			switch {
			case flags.clearDesc:
				input.ClearDescription = true
			case changed("description"):
				input.Description = &flags.description
			}
			if changed("language") {
				input.Language = &flags.language
			}
			if changed("category") {
				input.CategoryID = &flags.category
			}
			switch {
			case flags.clearTags:
				empty := []uint{}
				input.TagIDs = &empty
			case changed("tags"):
				input.TagIDs = &flags.tags
			}
			code, ok, err := flags.readCode(cmd)
			if err != nil {
				return err
			}
			if ok {
				input.Code = &code
			}

			store, err := opts.client()
			if err != nil {
				return err
			}
			snippet, err := store.UpdateSnippet(cmd.Context(), id, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated snippet #%d %q\n", snippet.ID, snippet.Title)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.clearTags, "clear-tags", false, "Remove every tag from the snippet")
	cmd.Flags().BoolVar(&flags.clearDesc, "clear-description", false, "Remove the description")
	cmd.MarkFlagsMutuallyExclusive("tags", "clear-tags")
	cmd.MarkFlagsMutuallyExclusive("description", "clear-description")
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			store, err := opts.client()
			if err != nil {
				return err
			}
			if err := store.DeleteSnippet(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted snippet #%d\n", id)
			return nil
		},
	}
}
