package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobpilot/internal/pages"
	"github.com/jonathan/jobpilot/internal/session"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in user",
	RunE:  runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := pages.Guard(a.store, a.deps.Navigator); err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	env := a.svc.Auth.GetProfile(ctx)
	if !env.HasData() {
		return errors.New(env.MessageOr("Failed to load profile"))
	}

	// Reload: the request may have refreshed the access token.
	sess, err := a.store.Load()
	if err != nil {
		return err
	}
	expires, _ := session.Expiry(sess.AccessToken)
	a.printer.PrintProfile(env.Data, expires)
	return nil
}
