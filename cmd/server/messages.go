package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var messagesLimit int

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List the newest contact form messages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		msgs, err := a.contact.Recent(cmd.Context(), messagesLimit)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No messages.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, m := range msgs {
			body := strings.Join(strings.Fields(m.Body), " ")
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m.ID, m.CreatedAt.Local().Format(time.DateTime), m.Email, body)
		}
		return tw.Flush()
	},
}

func init() {
	messagesCmd.Flags().IntVarP(&messagesLimit, "limit", "n", 20, "number of messages to show")
	rootCmd.AddCommand(messagesCmd)
}
