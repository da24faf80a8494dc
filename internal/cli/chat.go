package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"pet-adoption-marketplace/internal/chat"
	"pet-adoption-marketplace/internal/client"

	"github.com/spf13/cobra"
)

func newSendCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "send <to-user> <message...>",
		Short:   "Send a chat message",
		GroupID: "chat",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := opts.requireUser()
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}

			ack, err := c.SendMessage(cmd.Context(), from, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return fmt.Errorf("send message: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "SENT %s\n", ack.ID)
			return nil
		},
	}
}

func newWatchCommand(opts *globalOptions) *cobra.Command {
	var (
		noPush bool
		once   bool
	)

	cmd := &cobra.Command{
		Use:   "watch <counterpart>",
		Short: "Follow a conversation live",
		Long: `Print the conversation with <counterpart> and keep printing new messages.

Uses the server push channel when available and falls back to polling every --interval.
Stop with Ctrl-C.`,
		GroupID: "chat",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := opts.requireUser()
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			log := opts.logger()

			var feed chat.Feed = &chat.PollingFeed{Fetcher: c, Interval: opts.interval, Log: log}
			if !noPush {
				feed = &chat.FallbackFeed{
					Primary:   &chat.WebSocketFeed{URLFor: c.ConversationWSURL, Header: c.AuthHeader(), Log: log},
					Secondary: feed,
					Log:       log,
				}
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			updates, err := feed.Subscribe(ctx, me, args[0])
			if err != nil {
				return fmt.Errorf("subscribe: %w", err)
			}

			printed := 0
			for u := range updates {
				if u.Err != nil {
					log.Warn("conversation fetch failed", map[string]any{"error": u.Err.Error()})
					continue
				}
				printed = printNew(cmd.OutOrStdout(), me, u.Messages, printed)
				if once {
					return nil
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noPush, "no-push", false, "poll only, skip the websocket channel")
	cmd.Flags().BoolVar(&once, "once", false, "print the current conversation and exit")
	return cmd
}

// printNew imprime los mensajes posteriores a los ya mostrados y devuelve el nuevo total.
func printNew(w io.Writer, me string, msgs []client.Message, printed int) int {
	if printed > len(msgs) {
		printed = 0
	}
	for _, m := range msgs[printed:] {
		who := m.SenderID
		if who == me {
			who = "me"
		}
		fmt.Fprintf(w, "[%s] %s: %s\n", m.CreatedAt.Local().Format("15:04:05"), who, m.Content)
	}
	return len(msgs)
}

func newThreadsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "threads",
		Short:   "List conversations, most recent first",
		GroupID: "chat",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := opts.requireUser()
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}

			threads, err := c.Threads(cmd.Context(), me)
			if err != nil {
				return fmt.Errorf("list threads: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(threads) == 0 {
				fmt.Fprintln(out, "no conversations")
				return nil
			}
			for _, t := range threads {
				name := t.Name
				if name == "" {
					name = "(unknown)"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", t.CounterpartID, name, t.LastMessageAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
