package cmd

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
)

var premiumCmd = &cobra.Command{
	Use:   "premium",
	Short: "Premium plans and features",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			out := cmd.OutOrStdout()
			if a.Premium() {
				fmt.Fprintln(out, "You are on Premium.")
			}
			fmt.Fprintln(out, "Features:")
			for _, f := range app.PremiumFeatures {
				fmt.Fprintln(out, "  • "+f)
			}
			fmt.Fprintln(out)
			t := uitable.New()
			t.AddRow("PLAN", "PRICE", "")
			for _, p := range app.Plans {
				t.AddRow(p.Name, p.Price, p.Note)
			}
			fmt.Fprintln(out, t)
			return nil
		})
	},
}

var premiumSubscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Upgrade to Premium",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			if a.Premium() {
				fmt.Fprintln(cmd.OutOrStdout(), "Already on Premium.")
				return nil
			}
			if err := a.Subscribe(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Premium unlocked. Try `diary theme custom`.")
			return nil
		})
	},
}

func init() {
	premiumCmd.AddCommand(premiumSubscribeCmd)
}
