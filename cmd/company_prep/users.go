package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jonathan/company-prep/internal/db"
	"github.com/jonathan/company-prep/internal/users"
	"github.com/spf13/cobra"
)

var (
	userUsername string
	userPassword string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Long:  "Create an account. The password is read from --password or, when omitted, from the first line of stdin.",
	Args:  cobra.NoArgs,
	RunE:  runUsersCreate,
}

var usersCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify a username and password",
	Args:  cobra.NoArgs,
	RunE:  runUsersCheck,
}

func init() {
	for _, c := range []*cobra.Command{usersCreateCmd, usersCheckCmd} {
		c.Flags().StringVarP(&userUsername, "username", "u", "", "Username (required)")
		c.Flags().StringVarP(&userPassword, "password", "p", "", "Password (read from stdin when omitted)")
		if err := c.MarkFlagRequired("username"); err != nil {
			panic(fmt.Sprintf("failed to mark username flag as required: %v", err))
		}
	}
	usersCmd.AddCommand(usersCreateCmd, usersCheckCmd)
	rootCmd.AddCommand(usersCmd)
}

func readPassword(cmd *cobra.Command) (string, error) {
	if userPassword != "" {
		return userPassword, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", fmt.Errorf("password is required")
	}
	return line, nil
}

func newUserService(cmd *cobra.Command) (*users.Service, func(), error) {
	if err := appConfig.RequireDatabase(); err != nil {
		return nil, nil, err
	}
	database, err := db.Connect(cmd.Context(), appConfig.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	return users.NewService(database, &appConfig.Password), database.Close, nil
}

func runUsersCreate(cmd *cobra.Command, _ []string) error {
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	svc, closeDB, err := newUserService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	u, err := svc.Create(cmd.Context(), users.CreateRequest{Username: userUsername, Password: password})
	if err != nil {
		return err
	}
	logger.Info().Str("user_id", u.ID.String()).Msg("user created")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", u.Username, u.ID)
	return nil
}

func runUsersCheck(cmd *cobra.Command, _ []string) error {
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	svc, closeDB, err := newUserService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	u, err := svc.Authenticate(cmd.Context(), userUsername, password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Credentials valid for %s\n", u.Username)
	return nil
}
