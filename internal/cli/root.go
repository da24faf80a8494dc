// Package cli implementa petctl: chat y notificaciones del marketplace desde la terminal.
package cli

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/client"
	"pet-adoption-marketplace/internal/config"
	"pet-adoption-marketplace/internal/platform/logger"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	api      string
	user     string
	token    string
	interval time.Duration
	verbose  bool
}

// NewRootCommand arma el árbol de comandos. out recibe toda la salida normal.
func NewRootCommand(out io.Writer) *cobra.Command {
	cfg := config.Load()
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "petctl",
		Short: "Chat and adoption notifications for the pet marketplace",
		Long: `petctl - talk to the pet adoption marketplace API.

Examples:
  petctl --user 1 send 2 "Is Buddy still available?"
  petctl --user 1 watch 2
  petctl --user 1 notifications list
  petctl --user 1 notifications respond <id> accept`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.api, "api", envOr("PETCTL_API", "http://localhost:"+cfg.Port), "API base URL")
	pf.StringVar(&opts.user, "user", os.Getenv("PETCTL_USER"), "acting user id (dev mode, X-Debug-User-ID)")
	pf.StringVar(&opts.token, "token", os.Getenv("PETCTL_TOKEN"), "bearer token (takes precedence over --user)")
	pf.DurationVar(&opts.interval, "interval", cfg.ChatPollInterval, "polling interval when push is unavailable")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddGroup(
		&cobra.Group{ID: "chat", Title: "Chat Commands:"},
		&cobra.Group{ID: "adoption", Title: "Adoption Commands:"},
	)

	root.AddCommand(
		newSendCommand(opts),
		newWatchCommand(opts),
		newThreadsCommand(opts),
		newNotificationsCommand(opts),
		newInterestCommand(opts),
	)
	return root
}

func (o *globalOptions) client() (*client.Client, error) {
	return client.New(client.Config{
		BaseURL:     o.api,
		Token:       o.token,
		DebugUserID: o.user,
	})
}

func (o *globalOptions) requireUser() (string, error) {
	u := strings.TrimSpace(o.user)
	if u == "" {
		return "", errors.New("--user is required")
	}
	return u, nil
}

// requireIdentity acepta --token o --user: el server deduce al actor del header.
func (o *globalOptions) requireIdentity() error {
	if strings.TrimSpace(o.token) != "" {
		return nil
	}
	_, err := o.requireUser()
	return err
}

func (o *globalOptions) logger() logger.Logger {
	if !o.verbose {
		return logger.Nop()
	}
	return logger.New(logger.Options{Level: logger.Debug, Output: os.Stderr, App: "petctl"})
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
