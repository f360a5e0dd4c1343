package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/skillpath/skillpath/internal/store"
	"github.com/skillpath/skillpath/internal/ui"
)

var (
	chatsLimit int
	chatsAll   bool
	chatsWidth int
)

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "Manage saved tutor chats",
}

var chatsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved chats, newest first",
	Args:    cobra.NoArgs,
	RunE:    runChatsList,
}

var chatsShowCmd = &cobra.Command{
	Use:               "show <id>",
	Short:             "Print a saved chat",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: chatIDCompletion,
	RunE:              runChatsShow,
}

var chatsDeleteCmd = &cobra.Command{
	Use:               "delete <id>",
	Aliases:           []string{"rm"},
	Short:             "Delete a saved chat",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: chatIDCompletion,
	RunE:              runChatsDelete,
}

func init() {
	rootCmd.AddCommand(chatsCmd)
	chatsCmd.AddCommand(chatsListCmd, chatsShowCmd, chatsDeleteCmd)
	chatsListCmd.Flags().IntVarP(&chatsLimit, "limit", "n", 20, "Maximum number of chats")
	chatsListCmd.Flags().BoolVar(&chatsAll, "all", false, "Include chats of every user")
	AddWidthFlag(chatsShowCmd, &chatsWidth)
}

func runChatsList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	opts := store.ListOptions{Limit: chatsLimit}
	if !chatsAll {
		if opts.UserID, err = a.currentUserID(ctx); err != nil {
			return err
		}
	}
	chats, err := a.store.ListChats(ctx, opts)
	if err != nil {
		return err
	}
	if len(chats) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No saved chats. Start one with: skillpath tutor")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tMESSAGES\tUPDATED")
	for _, c := range chats {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", shortID(c.ID), ui.Truncate(c.Title, 40), c.MessageCount, formatAge(c.UpdatedAt))
	}
	return w.Flush()
}

func runChatsShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := resolveChat(cmd, a, args[0])
	if err != nil {
		return err
	}
	styles := ui.NewStyles(cmd.OutOrStdout())
	tr := ui.NewTerminalRenderer(styles, chatsWidth)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, styles.Title.Render(c.Title))
	fmt.Fprintln(out, styles.Muted.Render(c.ID+" · "+c.UpdatedAt.Format(time.RFC822)))
	for _, m := range c.Messages {
		fmt.Fprintln(out)
		if m.Role == store.RoleUser {
			fmt.Fprintln(out, styles.UserMsg.Render("❯ "+m.Text))
			continue
		}
		fmt.Fprintln(out, tr.RenderText(m.Text))
	}
	return nil
}

func runChatsDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := resolveChat(cmd, a, args[0])
	if err != nil {
		return err
	}
	if err := a.store.DeleteChat(cmd.Context(), c.ID); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.DefaultStyles().FormatResult(true, "Deleted "+c.Title))
	return nil
}

// resolveChat finds a chat by full ID or by a unique ID prefix.
func resolveChat(cmd *cobra.Command, a *app, id string) (*store.Chat, error) {
	ctx := cmd.Context()
	c, err := a.store.GetChat(ctx, id)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	all, err := a.store.ListChats(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	var match string
	for _, s := range all {
		if strings.HasPrefix(s.ID, id) {
			if match != "" {
				return nil, fmt.Errorf("chat id %q is ambiguous", id)
			}
			match = s.ID
		}
	}
	if match == "" {
		return nil, fmt.Errorf("chat %q: %w", id, store.ErrNotFound)
	}
	return a.store.GetChat(ctx, match)
}

func chatIDCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	a, err := openApp()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer a.Close()
	chats, err := a.store.ListChats(cmd.Context(), store.ListOptions{Limit: 50})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, c := range chats {
		if strings.HasPrefix(c.ID, toComplete) {
			out = append(out, c.ID+"\t"+c.Title)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("2006-01-02")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
