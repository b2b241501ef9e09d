// Package cmd implements the command-line interface for jevah.
package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/jevah-cli/jevah/auth"
	"github.com/jevah-cli/jevah/icon"
	"github.com/jevah-cli/jevah/integration/jevah"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/open"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountLoginCmd)
	accountCmd.AddCommand(accountLogoutCmd)
	accountCmd.AddCommand(accountStatusCmd)

	accountLoginCmd.Flags().BoolP("manual", "m", false, "Paste an access token manually instead of using the browser flow")
}

// accountCmd manages the Jevah account integration and synchronization settings.
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage Jevah account sign-in and synchronization settings",
	Long:  `Configure the Jevah account integration. A signed-in account synchronizes view history, likes and saves across devices.`,
}

// accountLoginCmd initiates the OAuth2 authentication flow for the Jevah account service.
var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the Jevah account service via OAuth",
	Long:  "Open your browser to securely log in to Jevah and save the OAuth token to the system keyring.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("manual")) {
			authURL := jevah.New().AuthURL()

			confirmOpenInBrowser := survey.Confirm{
				Message: "Open browser to authenticate with Jevah?",
				Default: false,
			}

			var openInBrowser bool
			err := survey.AskOne(&confirmOpenInBrowser, &openInBrowser)
			if err == nil && openInBrowser {
				err = open.Start(authURL)
			}

			if err != nil || !openInBrowser {
				fmt.Println("Please open the following URL in your browser:")
				fmt.Println(authURL)
			}

			input := survey.Input{
				Message: "Paste the access token here:",
			}

			var response string
			if err := survey.AskOne(&input, &response); err != nil {
				return err
			}

			if response == "" {
				return fmt.Errorf("empty token")
			}

			if err := auth.SetToken(response); err != nil {
				return fmt.Errorf("failed to save token to keyring: %w", err)
			}
		} else if err := jevah.AuthenticateWithBrowser(); err != nil {
			return err
		}

		fmt.Println("Authentication token successfully persisted to the system keyring.")
		return nil
	},
}

// accountLogoutCmd removes the stored account token.
var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored account token from the system keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.DeleteToken(); err != nil {
			log.Error(err)
			return err
		}
		fmt.Printf("%s Signed out\n", icon.Get(icon.Success))
		return nil
	},
}

// accountStatusCmd reports whether an account token is currently stored.
var accountStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the current account sign-in status",
	Run: func(cmd *cobra.Command, args []string) {
		token, err := auth.GetToken()
		if err != nil || token == "" {
			fmt.Printf("%s Not signed in\n", icon.Get(icon.Fail))
			return
		}

		fmt.Printf("%s Signed in", icon.Get(icon.Success))
		if viper.GetBool(key.AccountMarkViewedOnPlay) {
			fmt.Print(" - view sync enabled")
		}
		fmt.Println()
	},
}
