package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/now-client/pkg/now"
)

// NewAliasesCommand creates the aliases command group.
func NewAliasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "aliases",
		Aliases: []string{"alias"},
		Short:   "Manage aliases",
		Long:    "List, create and delete deployment aliases",
	}

	cmd.AddCommand(newAliasesListCommand())
	cmd.AddCommand(newAliasesDeleteCommand())
	cmd.AddCommand(newAliasesListDeploymentCommand())
	cmd.AddCommand(newAliasesCreateCommand())

	return cmd
}

func newAliasesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List aliases",
		Long:  "List all aliases of the current user or team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			aliases, err := client.Aliases().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list aliases: %w", err)
			}

			return render(cmd, aliases, renderAliasesTable)
		},
	}
}

func newAliasesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ALIAS_ID",
		Short: "Delete an alias",
		Long:  "Delete an alias and print the status reported by the server",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			status, err := client.Aliases().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete alias: %w", err)
			}

			return renderResult(cmd, "status", status)
		},
	}
}

func newAliasesListDeploymentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-deployment DEPLOYMENT_ID",
		Short: "List aliases of a deployment",
		Long:  "List the aliases pointing to a deployment",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			aliases, err := client.Aliases().ListForDeployment(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list deployment aliases: %w", err)
			}

			return render(cmd, aliases, renderAliasesTable)
		},
	}
}

func newAliasesCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create DEPLOYMENT_ID ALIAS",
		Short: "Create an alias",
		Long:  "Point an alias hostname at a deployment",
		Args:  nonBlankArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			alias, err := client.Aliases().CreateForDeployment(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to create alias: %w", err)
			}

			return render(cmd, alias, renderAliasDetails)
		},
	}
}

func renderAliasesTable(out io.Writer, aliases []now.Alias) error {
	if len(aliases) == 0 {
		return printEmpty(out, "No aliases found")
	}

	table := tablewriter.NewWriter(out)
	table.Header("UID", "Alias", "Deployment", "Created")

	for _, alias := range aliases {
		_ = table.Append(valueOrNA(alias.UID), alias.Alias, valueOrNA(aliasTarget(alias)), valueOrNA(alias.Created))
	}

	return table.Render()
}

func renderAliasDetails(out io.Writer, alias *now.Alias) error {
	if alias == nil {
		return printEmpty(out, "No alias returned")
	}

	return renderProperties(out, []property{
		{Name: "UID", Value: alias.UID},
		{Name: "Alias", Value: alias.Alias},
		{Name: "Deployment", Value: aliasTarget(*alias)},
		{Name: "Previous Deployment", Value: alias.OldID},
		{Name: "Created", Value: alias.Created},
	})
}

func aliasTarget(alias now.Alias) string {
	if alias.DeploymentID != "" {
		return alias.DeploymentID
	}

	if alias.Deployment != nil {
		return alias.Deployment.ID
	}

	return ""
}
