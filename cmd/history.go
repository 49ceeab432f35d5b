package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the conversation about a material",
}

var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		l, err := sess.History(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(cmd, l)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := sess.ClearHistory(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Cleared conversation about %q.\n", sess.Material().Name)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{historyShowCmd, historyClearCmd} {
		c.Flags().StringP("material", "m", "", "Material ID or name")
	}
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}
