package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/now-client/pkg/now"
)

// NewDomainsCommand creates the domains command group.
func NewDomainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "domains",
		Aliases: []string{"domain"},
		Short:   "Manage domains",
		Long:    "List and manage domains and their DNS records",
	}

	cmd.AddCommand(newDomainsListCommand())
	cmd.AddCommand(newDomainsAddCommand())
	cmd.AddCommand(newDomainsDeleteCommand())
	cmd.AddCommand(newDomainsRecordsCommand())
	cmd.AddCommand(newDomainsAddRecordCommand())
	cmd.AddCommand(newDomainsDeleteRecordCommand())

	return cmd
}

func newDomainsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List domains",
		Long:  "List all domains of the current user or team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			domains, err := client.Domains().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list domains: %w", err)
			}

			return render(cmd, domains, renderDomainsTable)
		},
	}
}

func newDomainsAddCommand() *cobra.Command {
	var external bool

	cmd := &cobra.Command{
		Use:   "add DOMAIN_NAME",
		Short: "Add a domain",
		Long:  "Register a domain, optionally one whose DNS is managed elsewhere",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			domain, err := client.Domains().Create(cmd.Context(), args[0], external)
			if err != nil {
				return fmt.Errorf("failed to add domain: %w", err)
			}

			return render(cmd, domain, renderDomainDetails)
		},
	}

	cmd.Flags().BoolVar(&external, "external", false, "the domain's DNS is managed externally")

	return cmd
}

func newDomainsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DOMAIN_NAME",
		Short: "Delete a domain",
		Long:  "Delete a domain and print the uid of the removed domain",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			uid, err := client.Domains().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete domain: %w", err)
			}

			return renderResult(cmd, "uid", uid)
		},
	}
}

func newDomainsRecordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "records DOMAIN_NAME",
		Short: "List DNS records",
		Long:  "List the DNS records of a domain",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			records, err := client.Domains().ListRecords(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list domain records: %w", err)
			}

			return render(cmd, records, renderRecordsTable)
		},
	}
}

func newDomainsAddRecordCommand() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:     "add-record DOMAIN_NAME",
		Short:   "Add a DNS record",
		Long:    "Add a DNS record to a domain from a JSON document",
		Example: `  now domains add-record example.com --data '{"name": "www", "type": "CNAME", "value": "alias.zeit.co"}'`,
		Args:    nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var record now.DomainRecord

			err := parseData(data, &record)
			if err != nil {
				return err
			}

			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			created, err := client.Domains().CreateRecord(cmd.Context(), args[0], &record)
			if err != nil {
				return fmt.Errorf("failed to add domain record: %w", err)
			}

			return render(cmd, created, renderRecordDetails)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "record as JSON (type, name, value, mxPriority)")

	return cmd
}

func newDomainsDeleteRecordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-record DOMAIN_NAME RECORD_ID",
		Short: "Delete a DNS record",
		Long:  "Delete a DNS record from a domain",
		Args:  nonBlankArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			err = client.Domains().DeleteRecord(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to delete domain record: %w", err)
			}

			return printDone(cmd, "Record %s of %s deleted", args[1], args[0])
		},
	}
}

func renderDomainsTable(out io.Writer, domains []now.Domain) error {
	if len(domains) == 0 {
		return printEmpty(out, "No domains found")
	}

	table := tablewriter.NewWriter(out)
	table.Header("Name", "UID", "External", "Verified", "Aliases", "Created")

	for _, domain := range domains {
		_ = table.Append(
			domain.Name,
			domain.UID,
			yesNo(domain.IsExternal),
			formatVerified(domain.Verified),
			valueOrNA(strings.Join(domain.Aliases, ", ")),
			formatTime(domain.Created),
		)
	}

	return table.Render()
}

func renderDomainDetails(out io.Writer, domain *now.Domain) error {
	return renderProperties(out, []property{
		{Name: "Name", Value: domain.Name},
		{Name: "UID", Value: domain.UID},
		{Name: "External", Value: yesNo(domain.IsExternal)},
		{Name: "Verified", Value: formatVerified(domain.Verified)},
		{Name: "Verify Token", Value: domain.VerifyToken},
		{Name: "Created", Value: formatTime(domain.Created)},
	})
}

func renderRecordsTable(out io.Writer, records []now.DomainRecord) error {
	if len(records) == 0 {
		return printEmpty(out, "No records found")
	}

	table := tablewriter.NewWriter(out)
	table.Header("ID", "Type", "Name", "Value", "MX Priority")

	for _, record := range records {
		_ = table.Append(record.ID, record.Type, valueOrNA(record.Name), record.Value, formatPriority(record.MXPriority))
	}

	return table.Render()
}

func renderRecordDetails(out io.Writer, record *now.DomainRecord) error {
	return renderProperties(out, []property{
		{Name: "ID", Value: record.ID},
		{Name: "Type", Value: record.Type},
		{Name: "Name", Value: record.Name},
		{Name: "Value", Value: record.Value},
		{Name: "MX Priority", Value: formatPriority(record.MXPriority)},
	})
}

func formatVerified(verified *bool) string {
	if verified == nil {
		return NotAvailable
	}

	return yesNo(*verified)
}

func formatPriority(priority *int64) string {
	if priority == nil {
		return NotAvailable
	}

	return strconv.FormatInt(*priority, 10)
}
