// Package cmd (auth.go) defines the authentication commands: 'auth login',
// 'auth code', 'auth logout' and 'auth status'. A login that has been started
// but not confirmed is kept in a session file between invocations.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/yadisk-client/internal/app"
	"github.com/tonimelisma/yadisk-client/internal/session"
	"github.com/tonimelisma/yadisk-client/internal/ui"
)

// pkceLoginTTL bounds how long a browser login waits for its code.
const pkceLoginTTL = 10 * time.Minute

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication with Yandex.Disk",
	Long:  `Provides subcommands to log in, complete a browser login, log out and check authentication status.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with Yandex ID",
	Long: `Starts the authentication process. By default the device code flow is
used: visit the printed URL and enter the code, then run any command.
With --browser a PKCE-protected authorization URL is printed instead; the
confirmation code shown after granting access goes to 'auth code'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewUnauthenticatedApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return authLoginLogic(a, cmd, args)
	},
}

var authCodeCmd = &cobra.Command{
	Use:   "code <confirmation-code>",
	Short: "Complete a browser login with its confirmation code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewUnauthenticatedApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return authCodeLogic(a, cmd, args)
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke and clear the stored token",
	Long:  `Revokes the stored token, removes it and any pending login state. After logging out, run 'auth login' again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewUnauthenticatedApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Logout(app.Context(cmd))
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the current authentication status",
	Long:  `Checks whether you are logged in. A confirmed device login is completed first. If a login is pending, instructions are shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApp(cmd)
		if err != nil {
			if errors.Is(err, app.ErrLoginPending) || errors.Is(err, app.ErrNotLoggedIn) {
				fmt.Println(err.Error())
				return nil
			}
			return fmt.Errorf("checking authentication status: %w", err)
		}
		defer a.Close()
		return authStatusLogic(a, cmd, args)
	},
}

func authLoginLogic(a *app.App, cmd *cobra.Command, args []string) error {
	if a.Config.Token.AccessToken != "" {
		fmt.Println("You are already logged in. To switch accounts, run 'yadisk-client auth logout' first.")
		return nil
	}
	if a.ClientID() == "" {
		return app.ErrNoClientID
	}

	pending, err := a.Sessions.LoadAuthState()
	if err != nil {
		return fmt.Errorf("checking for a pending login: %w", err)
	}
	if pending != nil {
		fmt.Println("A login attempt is already pending. Please complete it with the previously provided URL and code.")
		fmt.Println("Alternatively, run 'yadisk-client auth logout' to cancel the pending attempt and start over.")
		return nil
	}

	ctx := app.Context(cmd)
	if browser, _ := cmd.Flags().GetBool("browser"); browser {
		authURL, verifier, err := a.SDK.StartAuthentication()
		if err != nil {
			return fmt.Errorf("login initiation failed: %w", err)
		}
		state := &session.AuthState{
			Flow:         session.FlowPKCE,
			CodeVerifier: verifier,
			ExpiresAt:    time.Now().Add(pkceLoginTTL),
		}
		if err := a.Sessions.SaveAuthState(state); err != nil {
			return fmt.Errorf("saving auth session state failed: %w", err)
		}
		fmt.Printf("Open this URL in a web browser and grant access:\n%s\n\n", authURL)
		fmt.Println("Then run: yadisk-client auth code <confirmation-code>")
		return nil
	}

	deviceName, _ := os.Hostname()
	resp, err := a.SDK.InitiateDeviceCodeFlow(ctx, deviceName)
	if err != nil {
		return fmt.Errorf("login initiation failed: %w", err)
	}
	state := &session.AuthState{
		Flow:            session.FlowDevice,
		DeviceCode:      resp.DeviceCode,
		UserCode:        resp.UserCode,
		VerificationURL: resp.VerificationURL,
		Interval:        resp.Interval,
		ExpiresAt:       time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
	if err := a.Sessions.SaveAuthState(state); err != nil {
		return fmt.Errorf("saving auth session state failed: %w", err)
	}

	fmt.Printf("To complete authentication, open a web browser and go to:\n%s\n", resp.VerificationURL)
	fmt.Printf("Then, enter the following code: %s\n\n", resp.UserCode)
	fmt.Printf("This code will expire in approximately %d minutes.\n", resp.ExpiresIn/60)
	return nil
}

func authCodeLogic(a *app.App, cmd *cobra.Command, args []string) error {
	pending, err := a.Sessions.LoadAuthState()
	if err != nil {
		return fmt.Errorf("loading pending login: %w", err)
	}
	if pending == nil || pending.Flow != session.FlowPKCE {
		return errors.New("no browser login is pending, run 'yadisk-client auth login --browser' first")
	}

	token, err := a.SDK.CompleteAuthentication(app.Context(cmd), args[0], pending.CodeVerifier)
	if err != nil {
		return fmt.Errorf("completing login: %w", err)
	}
	return a.SaveLogin(token)
}

func authStatusLogic(a *app.App, cmd *cobra.Command, args []string) error {
	disk, err := a.SDK.GetDiskInfo(app.Context(cmd), nil)
	if err != nil {
		return fmt.Errorf("could not retrieve user information: %w", err)
	}
	ui.Success(fmt.Sprintf("You are logged in as: %s (%s)", disk.User.DisplayName, disk.User.Login))
	return nil
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authCodeCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().Bool("browser", false, "Log in through a browser with PKCE instead of a device code")
}
