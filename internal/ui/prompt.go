package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/skillpath/skillpath/internal/advisor"
)

// ErrCancelled is returned when the user aborts a spinner or form.
var ErrCancelled = errors.New("cancelled")

func getTTY() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}

// spinnerModel shows a spinner until the background call finishes.
type spinnerModel struct {
	spinner   spinner.Model
	label     string
	cancel    context.CancelFunc
	cancelled bool
	done      bool
	err       error
	dimStyle  lipgloss.Style
}

type resultMsg struct{ err error }

func newSpinnerModel(label string, cancel context.CancelFunc, tty *os.File) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	r := lipgloss.NewRenderer(tty)
	s.Style = r.NewStyle().Foreground(currentTheme.Spinner)
	return spinnerModel{
		spinner:  s,
		label:    label,
		cancel:   cancel,
		dimStyle: r.NewStyle().Foreground(currentTheme.Muted),
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEscape || msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.cancel()
			return m, tea.Quit
		}
	case resultMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.spinner.View() + " " + m.label + " " + m.dimStyle.Render("(esc to cancel)")
}

// RunWithSpinner runs fn while showing a spinner on the terminal. Without
// a terminal, or with quiet set, fn runs directly.
func RunWithSpinner(ctx context.Context, label string, quiet bool, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tty, ttyErr := getTTY()
	if ttyErr != nil || quiet {
		return fn(ctx)
	}
	defer tty.Close()

	p := tea.NewProgram(newSpinnerModel(label, cancel, tty), tea.WithInput(tty), tea.WithOutput(tty))
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		p.Send(resultMsg{err: fn(ctx)})
	}()

	final, err := p.Run()
	cancel()
	<-finished
	if err != nil {
		return err
	}
	m := final.(spinnerModel)
	if m.cancelled {
		return ErrCancelled
	}
	return m.err
}

func runForm(form *huh.Form) error {
	// Use /dev/tty directly to bypass shell redirections
	if tty, err := getTTY(); err == nil {
		defer tty.Close()
		form = form.WithInput(tty).WithOutput(tty)
	}
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return err
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// ProfileForm asks for the student profile. Fields already set are
// shown as defaults.
func ProfileForm(p *advisor.StudentProfile) error {
	input := func(title, placeholder string, dest *string) huh.Field {
		return huh.NewInput().Title(title).Placeholder(placeholder).Value(dest).Validate(required(title))
	}
	form := huh.NewForm(
		huh.NewGroup(
			input("Full Name", "Ananya Sharma", &p.Name),
			input("Education Level", "B.Tech, 3rd year", &p.EducationLevel),
			input("Grades / CGPA", "8.2 CGPA", &p.Grades),
			input("Current Location", "Pune", &p.Location),
		).Title("About you"),
		huh.NewGroup(
			input("Technical Skills (comma-separated)", "Python, SQL, Excel", &p.TechSkills),
			input("Interests (comma-separated)", "data, finance, design", &p.Interests),
			huh.NewText().
				Title("Career Goals").
				Placeholder("What kind of work do you want to be doing in five years?").
				Value(&p.CareerGoals).
				Validate(required("Career Goals")),
		).Title("Skills and goals"),
	)
	return runForm(form)
}

// Credentials holds account form input.
type Credentials struct {
	Name     string
	Email    string
	Password string
}

// CredentialsForm asks for an email and password, plus a name on signup.
func CredentialsForm(c *Credentials, signup bool) error {
	var fields []huh.Field
	if signup {
		fields = append(fields, huh.NewInput().Title("Name").Value(&c.Name).Validate(required("Name")))
	}
	fields = append(fields,
		huh.NewInput().Title("Email").Value(&c.Email).Validate(required("Email")),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&c.Password).Validate(required("Password")),
	)
	return runForm(huh.NewForm(huh.NewGroup(fields...)))
}
