package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skillpath/skillpath/internal/auth"
	"github.com/skillpath/skillpath/internal/ui"
)

var (
	authName     string
	authEmail    string
	authPassword string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a local account and sign in",
	Args:  cobra.NoArgs,
	RunE:  runSignup,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to a local account",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd)
	signupCmd.Flags().StringVar(&authName, "name", "", "Display name")
	for _, c := range []*cobra.Command{signupCmd, loginCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Email address")
		c.Flags().StringVar(&authPassword, "password", "", "Password (prompted when omitted)")
	}
}

func credentials(signup bool) (ui.Credentials, error) {
	c := ui.Credentials{Name: authName, Email: authEmail, Password: authPassword}
	complete := c.Email != "" && c.Password != "" && (!signup || c.Name != "")
	if complete {
		return c, nil
	}
	if err := ui.CredentialsForm(&c, signup); err != nil {
		return c, err
	}
	return c, nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	c, err := credentials(true)
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.auth.Signup(cmd.Context(), c.Name, c.Email, c.Password)
	if err != nil {
		return err
	}
	logger.Info("signed up", zap.String("email", u.Email))
	fmt.Fprintln(cmd.ErrOrStderr(), ui.DefaultStyles().FormatResult(true, "Welcome, "+u.Name))
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	c, err := credentials(false)
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.auth.Login(cmd.Context(), c.Email, c.Password)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.DefaultStyles().FormatResult(true, "Signed in as "+u.Email))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.auth.Logout(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.DefaultStyles().FormatResult(true, "Signed out"))
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.auth.Current(cmd.Context())
	if errors.Is(err, auth.ErrNotSignedIn) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Not signed in. Use: skillpath login")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.Name, u.Email)
	return nil
}
