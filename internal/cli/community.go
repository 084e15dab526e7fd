package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/core"
)

func newCommentsCmd(app *App) *cobra.Command {
	var (
		mine   bool
		search string
	)
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "List community comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				comments []core.Comment
				err      error
			)
			if mine {
				comments, err = app.client.MyComments(cmd.Context())
			} else {
				comments, err = app.client.ListComments(cmd.Context(), search)
			}
			if err != nil {
				return err
			}
			renderComments(cmd.OutOrStdout(), comments)
			return nil
		},
	}
	cmd.Flags().BoolVar(&mine, "mine", false, "only your own comments")
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by text")
	cmd.MarkFlagsMutuallyExclusive("mine", "search")
	return cmd
}

func newCommentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Post, edit or delete your comments",
	}

	postCmd := &cobra.Command{
		Use:   "post <text>...",
		Short: "Post a comment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := core.ValidateComment(strings.Join(args, " "))
			if err != nil {
				return err
			}
			c, err := app.client.PostComment(cmd.Context(), content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted comment %d\n", c.ID)
			return nil
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit <id> <text>...",
		Short: "Replace the text of a comment",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			content, err := core.ValidateComment(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if err := app.client.EditComment(cmd.Context(), id, content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated comment %d\n", id)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.client.DeleteComment(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(postCmd, editCmd, deleteCmd)
	return cmd
}

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "User administration (admin role required)",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.open(cmd.Context()); err != nil {
				return err
			}
			if err := app.requireLogin(); err != nil {
				return err
			}
			if !app.store.User().IsAdmin() {
				return fmt.Errorf("admin role required")
			}
			return nil
		},
	}

	var search string
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := app.client.ListUsers(cmd.Context(), search)
			if err != nil {
				return err
			}
			renderUsers(cmd.OutOrStdout(), users)
			return nil
		},
	}
	usersCmd.Flags().StringVarP(&search, "search", "s", "", "filter by name or email")

	banCmd := &cobra.Command{
		Use:   "ban <user-id>",
		Short: "Toggle the ban flag of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client.ToggleBan(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Toggled ban for %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(usersCmd, banCmd)
	return cmd
}
