package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

func newTagsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List tags",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := opts.client()
				if err != nil {
					return err
				}
				tags, err := store.ListTags(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(tags))
				for _, tag := range tags {
					rows = append(rows, []string{strconv.FormatUint(uint64(tag.ID), 10), tag.Name})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "NAME"}, rows))
				return nil
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a tag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := opts.client()
				if err != nil {
					return err
				}
				tag, err := store.CreateTag(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created tag #%d %q\n", tag.ID, tag.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <id> <name>",
			Short: "Rename a tag",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				store, err := opts.client()
				if err != nil {
					return err
				}
				tag, err := store.RenameTag(cmd.Context(), id, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "renamed tag #%d to %q\n", tag.ID, tag.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a tag and detach it from every snippet",
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
				if err := store.DeleteTag(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted tag #%d\n", id)
				return nil
			},
		},
	)
	return cmd
}

func newCategoriesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage categories",
	}

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.client()
			if err != nil {
				return err
			}
			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &description
			}
			category, err := store.CreateCategory(cmd.Context(), args[0], desc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created category #%d %q\n", category.ID, category.Name)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "Category description")

	var (
		newName        string
		newDescription string
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a category or change its description",
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
			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &newDescription
			}
			category, err := store.UpdateCategory(cmd.Context(), id, newName, desc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated category #%d %q\n", category.ID, category.Name)
			return nil
		},
	}
	update.Flags().StringVarP(&newName, "name", "n", "", "New category name")
	update.Flags().StringVarP(&newDescription, "description", "d", "", "New category description")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := opts.client()
				if err != nil {
					return err
				}
				categories, err := store.ListCategories(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(categories))
				for _, category := range categories {
					rows = append(rows, []string{
						strconv.FormatUint(uint64(category.ID), 10),
						category.Name,
						category.DescriptionText(),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "NAME", "DESCRIPTION"}, rows))
				return nil
			},
		},
		create,
		update,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a category that no snippet uses",
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
				if err := store.DeleteCategory(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted category #%d\n", id)
				return nil
			},
		},
	)
	return cmd
}
