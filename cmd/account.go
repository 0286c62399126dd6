package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/ramanasai/diary/internal/app"
	"github.com/ramanasai/diary/internal/apperr"
	"github.com/ramanasai/diary/internal/consent"
	"github.com/ramanasai/diary/internal/profile"
)

var (
	consentShow      string
	consentAcceptAll bool
	consentAccept    []string
	consentMarketing bool
)

var consentCmd = &cobra.Command{
	Use:   "consent",
	Short: "Review and accept the service agreements",
	Long: `Review and accept the service agreements.

Examples:
  diary consent                       # list agreements and current status
  diary consent --show privacy        # read one document
  diary consent --accept-all          # agree to everything
  diary consent --accept terms,privacy,thirdParty,location`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			out := cmd.OutOrStdout()
			if consentShow != "" {
				it, ok := consent.Lookup(consentShow)
				if !ok {
					return apperr.Validation("CONSENT_ITEM", "unknown agreement "+consentShow)
				}
				fmt.Fprintln(out, it.Document)
				return nil
			}

			if !consentAcceptAll && len(consentAccept) == 0 {
				rec, ok, err := a.ConsentAccepted(cmd.Context())
				if err != nil {
					return err
				}
				t := uitable.New()
				t.AddRow("ID", "AGREEMENT")
				for _, it := range consent.Items {
					t.AddRow(it.ID, it.Label)
				}
				fmt.Fprintln(out, t)
				if ok {
					fmt.Fprintf(out, "\nAccepted %s (marketing: %t)\n", humanize.Time(rec.AcceptedAt), rec.Marketing)
				} else {
					fmt.Fprintln(out, "\nNot accepted yet. Run with --accept-all or --accept <ids>.")
				}
				return nil
			}

			g := consent.NewGate()
			if consentAcceptAll {
				g.SetAll(true)
			}
			for _, id := range consentAccept {
				if err := g.Set(strings.TrimSpace(id), true); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("marketing") {
				if err := g.Set(consent.Marketing, consentMarketing); err != nil {
					return err
				}
			}
			rec, err := g.Continue(a.Now())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "missing: %s\n", strings.Join(g.Missing(), ", "))
				return err
			}
			if err := a.AcceptConsent(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintln(out, "Agreements accepted.")
			return nil
		})
	},
}

var (
	signupNickname  string
	signupGender    string
	signupBirthdate string
	signupSkip      bool
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create your profile",
	Long: `Create your profile. Agreements must be accepted first.

Examples:
  diary signup --nickname Mina --gender female --birthdate 1995-04-12
  diary signup --skip                 # continue as guest`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			ctx := cmd.Context()
			if signupSkip {
				if err := a.SkipSignup(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Continuing as guest.")
				return nil
			}
			u := profile.User{
				Nickname:  strings.TrimSpace(signupNickname),
				Gender:    profile.Gender(strings.ToLower(strings.TrimSpace(signupGender))),
				Birthdate: strings.TrimSpace(signupBirthdate),
			}
			if err := a.Signup(ctx, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", u.Nickname)
			return nil
		})
	},
}

var profileReminder string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile or toggle the daily reminder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			if profileReminder != "" {
				var on bool
				switch strings.ToLower(profileReminder) {
				case "on", "true", "yes":
					on = true
				case "off", "false", "no":
				default:
					return apperr.Validation("REMINDER", "reminder must be on or off")
				}
				if err := a.SetReminder(cmd.Context(), on); err != nil {
					return err
				}
			}

			u, ok := a.User()
			if !ok {
				return errors.New("no profile yet, run `diary signup`")
			}
			plan := "Free"
			if u.Premium {
				plan = "Premium"
			}
			t := uitable.New()
			t.AddRow("Nickname:", u.Nickname)
			t.AddRow("Email:", u.Email)
			if s := u.Summary(); s != "" {
				t.AddRow("About:", s)
			}
			t.AddRow("Plan:", plan)
			t.AddRow("Reminder:", onOff(u.Reminder))
			t.AddRow("Theme:", a.Theme().Current)
			t.AddRow("Entries:", len(a.Entries()))
			if !u.JoinedAt.IsZero() {
				t.AddRow("Joined:", humanize.Time(u.JoinedAt))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the profile (entries are kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(a *app.App) error {
			if err := a.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		})
	},
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	consentCmd.Flags().StringVar(&consentShow, "show", "", "print one agreement document")
	consentCmd.Flags().BoolVar(&consentAcceptAll, "accept-all", false, "agree to every item")
	consentCmd.Flags().StringSliceVar(&consentAccept, "accept", nil, "agree to these item ids")
	consentCmd.Flags().BoolVar(&consentMarketing, "marketing", false, "opt in or out of marketing")

	signupCmd.Flags().StringVar(&signupNickname, "nickname", "", "nickname (required)")
	signupCmd.Flags().StringVar(&signupGender, "gender", "", "male|female (required)")
	signupCmd.Flags().StringVar(&signupBirthdate, "birthdate", "", "YYYY-MM-DD")
	signupCmd.Flags().BoolVar(&signupSkip, "skip", false, "continue with a guest profile")

	profileCmd.Flags().StringVar(&profileReminder, "reminder", "", "on|off")
}
