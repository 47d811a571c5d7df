package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/session"
)

var (
	authEmail    string
	authPassword string
	authName     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the session",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE:  runLogout,
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVarP(&authEmail, "email", "e", "", "Account email")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "Account password (prompted when omitted)")
	}
	registerCmd.Flags().StringVarP(&authName, "name", "n", "", "Your full name")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := promptCredentials(cmd, false); err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	env := a.svc.Auth.Login(ctx, authEmail, authPassword)
	if !env.HasData() {
		return errors.New(env.MessageOr("Login failed"))
	}
	a.printer.PrintMessage(fmt.Sprintf("Signed in as %s", authEmail))
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := promptCredentials(cmd, true); err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	env := a.svc.Auth.Register(ctx, authName, authEmail, authPassword)
	if !env.HasData() {
		return errors.New(env.MessageOr("Registration failed"))
	}
	a.printer.PrintMessage(fmt.Sprintf("Account created for %s", authEmail))
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	prev, err := a.store.Load()
	if err != nil || !prev.Authenticated() {
		a.printer.PrintMessage("No stored session")
		return nil
	}
	if err := a.svc.Auth.Logout(); err != nil {
		return err
	}
	a.printer.PrintMessage("Signed out " + sessionUserLabel(prev))
	return nil
}

// promptCredentials reads missing credential flags from stdin, one per line.
func promptCredentials(cmd *cobra.Command, withName bool) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.ErrOrStderr()

	fields := []struct {
		label string
		value *string
	}{
		{"Email", &authEmail},
		{"Password", &authPassword},
	}
	if withName {
		fields = append([]struct {
			label string
			value *string
		}{{"Name", &authName}}, fields...)
	}

	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		v, err := prompt(in, out, f.label)
		if err != nil {
			return err
		}
		*f.value = v
	}
	return nil
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// sessionUserLabel describes who the stored session belongs to.
func sessionUserLabel(s session.Session) string {
	if s.User == nil {
		return "unknown user"
	}
	return fmt.Sprintf("%s <%s>", s.User.Name, s.User.Email)
}
