package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newNotificationsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Manage adoption notifications",
		GroupID: "adoption",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notifications, newest first",
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

			items, err := c.Notifications(cmd.Context(), me)
			if err != nil {
				return fmt.Errorf("list notifications: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "no notifications")
				return nil
			}
			for _, n := range items {
				mark := "*"
				if n.IsRead {
					mark = " "
				}
				fmt.Fprintf(out, "%s %s\t%-12s\t%s\n", mark, n.ID, n.Type, n.Message)
			}
			return nil
		},
	}

	read := &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			if err := c.MarkRead(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("mark read: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "READ %s\n", args[0])
			return nil
		},
	}

	markAll := &cobra.Command{
		Use:   "mark-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := opts.requireUser()
			if err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			n, err := c.MarkAllRead(cmd.Context(), me)
			if err != nil {
				return fmt.Errorf("mark all read: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "MARKED %d\n", n)
			return nil
		},
	}

	respond := &cobra.Command{
		Use:   "respond <notification-id> <accept|reject>",
		Short: "Answer an adoption interest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireIdentity(); err != nil {
				return err
			}
			decision := strings.ToLower(args[1])
			if decision != "accept" && decision != "reject" {
				return fmt.Errorf("decision must be accept or reject, got %q", args[1])
			}
			c, err := opts.client()
			if err != nil {
				return err
			}

			reply, err := c.Respond(cmd.Context(), args[0], decision)
			if err != nil {
				return fmt.Errorf("respond: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", strings.ToUpper(reply.Type), reply.ID, reply.ToUserID)
			return nil
		},
	}

	cmd.AddCommand(list, read, markAll, respond)
	return cmd
}

func newInterestCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "interest <pet-id>",
		Short:   "Tell a pet's owner you want to adopt it",
		GroupID: "adoption",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireIdentity(); err != nil {
				return err
			}
			c, err := opts.client()
			if err != nil {
				return err
			}

			n, err := c.ExpressInterest(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("express interest: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "NOTIFIED %s (%s)\n", n.ToUserID, n.ID)
			return nil
		},
	}
}
