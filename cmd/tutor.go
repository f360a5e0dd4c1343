package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skillpath/skillpath/internal/store"
	"github.com/skillpath/skillpath/internal/tui/chat"
	"github.com/skillpath/skillpath/internal/ui"
)

var (
	tutorChatID   string
	tutorModel    string
	tutorProvider string
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Chat with the AI tutor",
	Long: `Start an interactive tutor session. Replies stream in and are re-rendered
as they arrive. Conversations are saved and can be resumed with --chat.

Keys:
  enter    send
  ctrl+n   new chat
  esc      quit`,
	Args: cobra.NoArgs,
	RunE: runTutor,
}

func init() {
	rootCmd.AddCommand(tutorCmd)
	tutorCmd.Flags().StringVarP(&tutorChatID, "chat", "c", "", "Resume a saved chat by ID")
	AddModelFlag(tutorCmd, &tutorModel)
	AddProviderFlag(tutorCmd, &tutorProvider)
	if err := tutorCmd.RegisterFlagCompletionFunc("chat", chatIDCompletion); err != nil {
		panic("failed to register chat completion: " + err.Error())
	}
}

func runTutor(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	provider, err := a.provider(tutorProvider)
	if err != nil {
		return err
	}
	t := a.tutor(provider, tutorModel)
	userID, err := a.currentUserID(ctx)
	if err != nil {
		return err
	}

	var existing *store.Chat
	if tutorChatID != "" {
		existing, err = resolveChat(cmd, a, tutorChatID)
		if err != nil {
			return err
		}
	}

	model := chat.New(t, existing, userID, ui.DefaultStyles())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tutor: %w", err)
	}
	if c := model.Chat(); len(c.Messages) > 1 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Resume with: skillpath tutor --chat %s\n", c.ID)
	}
	return nil
}
