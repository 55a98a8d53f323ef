package commands

import (
	"fmt"
	"io"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/now-client/pkg/now"
)

// readSecret reads a secret value from the terminal without echo.
var readSecret = func() (string, error) {
	value, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read secret value: %w", err)
	}

	return string(value), nil
}

// NewSecretsCommand creates the secrets command group.
func NewSecretsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "secrets",
		Aliases: []string{"secret"},
		Short:   "Manage secrets",
		Long:    "List, create, rename and delete secrets. Secret values are never shown",
	}

	cmd.AddCommand(newSecretsListCommand())
	cmd.AddCommand(newSecretsCreateCommand())
	cmd.AddCommand(newSecretsRenameCommand())
	cmd.AddCommand(newSecretsDeleteCommand())

	return cmd
}

func newSecretsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List secrets",
		Long:  "List all secrets of the current user or team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			secrets, err := client.Secrets().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list secrets: %w", err)
			}

			return render(cmd, secrets, renderSecretsTable)
		},
	}
}

func newSecretsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME [VALUE]",
		Short: "Create a secret",
		Long:  "Create a secret. The value is prompted for when it is not given as an argument",
		Args:  cobra.MatchAll(cobra.RangeArgs(1, 2), noBlankArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := secretValue(cmd, args)
			if err != nil {
				return err
			}

			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			secret, err := client.Secrets().Create(cmd.Context(), args[0], value)
			if err != nil {
				return fmt.Errorf("failed to create secret: %w", err)
			}

			return render(cmd, secret, renderSecretDetails)
		},
	}
}

func secretValue(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 1 {
		return args[1], nil
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Value: ")

	value, err := readSecret()

	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	return value, err
}

func newSecretsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename UID_OR_NAME NEW_NAME",
		Short: "Rename a secret",
		Long:  "Change the name of a secret identified by uid or name",
		Args:  nonBlankArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			secret, err := client.Secrets().Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to rename secret: %w", err)
			}

			return render(cmd, secret, renderSecretDetails)
		},
	}
}

func newSecretsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete UID_OR_NAME",
		Short: "Delete a secret",
		Long:  "Delete a secret identified by uid or name",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			secret, err := client.Secrets().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete secret: %w", err)
			}

			return render(cmd, secret, renderSecretDetails)
		},
	}
}

func renderSecretsTable(out io.Writer, secrets []now.Secret) error {
	if len(secrets) == 0 {
		return printEmpty(out, "No secrets found")
	}

	table := tablewriter.NewWriter(out)
	table.Header("UID", "Name", "Created")

	for _, secret := range secrets {
		_ = table.Append(secret.UID, secret.Name, valueOrNA(secret.Created))
	}

	return table.Render()
}

func renderSecretDetails(out io.Writer, secret *now.Secret) error {
	if secret == nil {
		return printEmpty(out, "No secret returned")
	}

	return renderProperties(out, []property{
		{Name: "UID", Value: secret.UID},
		{Name: "Name", Value: secret.Name},
		{Name: "Created", Value: secret.Created},
	})
}
