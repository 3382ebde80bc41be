package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login [developer-login]",
	Short: "Authenticate and store the session token",
	Long: `Authenticates against the backend and writes the bearer token to
~/.panelctl/session.json. All other commands read it from there.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		login := args[0]
		password := loginPassword
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		sess, err := client.Login(cmd.Context(), login, password)
		if err != nil {
			return err
		}
		logger.Info("login ok", zap.String("login", sess.UserLogin))
		fmt.Printf("Signed in as %s\n", sess.UserLogin)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session and backend configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Backend:  %s\n", cfg.APIBaseURL)
		fmt.Printf("Timeout:  %s\n", cfg.RequestTimeout)
		if sess := client.Sessions().Current(); sess != nil {
			fmt.Printf("Session:  %s (token stored)\n", sess.UserLogin)
		} else {
			fmt.Println("Session:  none — run `panelctl login`")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
}
