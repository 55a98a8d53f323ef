package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/now-client/pkg/now"
)

// NewCertsCommand creates the certs command group.
func NewCertsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "certs",
		Aliases: []string{"cert", "certificates"},
		Short:   "Manage TLS certificates",
		Long:    "List, issue, renew, replace and delete TLS certificates",
	}

	cmd.AddCommand(newCertsListCommand())
	cmd.AddCommand(newCertsIssueCommand())
	cmd.AddCommand(newCertsRenewCommand())
	cmd.AddCommand(newCertsReplaceCommand())
	cmd.AddCommand(newCertsDeleteCommand())

	return cmd
}

func newCertsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list COMMON_NAME",
		Short: "List certificates",
		Long:  "List the certificates issued for a common name",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			certs, err := client.Certificates().List(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list certificates: %w", err)
			}

			return render(cmd, certs, renderCertsTable)
		},
	}
}

func newCertsIssueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "issue DOMAIN...",
		Short: "Issue a certificate",
		Long:  "Issue a new certificate covering the given domains",
		Args:  minNonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			uid, err := client.Certificates().Create(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("failed to issue certificate: %w", err)
			}

			return renderResult(cmd, "uid", uid)
		},
	}
}

func newCertsRenewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "renew DOMAIN...",
		Short: "Renew a certificate",
		Long:  "Renew the certificate covering the given domains",
		Args:  minNonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			uid, err := client.Certificates().Renew(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("failed to renew certificate: %w", err)
			}

			return renderResult(cmd, "uid", uid)
		},
	}
}

func newCertsReplaceCommand() *cobra.Command {
	var caFile, certFile, keyFile string

	cmd := &cobra.Command{
		Use:   "replace DOMAIN...",
		Short: "Replace a certificate",
		Long:  "Upload a certificate chain and private key for the given domains",
		Args:  minNonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ca, err := readFile(caFile)
			if err != nil {
				return err
			}

			cert, err := readFile(certFile)
			if err != nil {
				return err
			}

			key, err := readFile(keyFile)
			if err != nil {
				return err
			}

			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			createdAt, err := client.Certificates().Replace(cmd.Context(), args, ca, cert, key)
			if err != nil {
				return fmt.Errorf("failed to replace certificate: %w", err)
			}

			return renderResult(cmd, "created_at", createdAt)
		},
	}

	cmd.Flags().StringVar(&caFile, "ca", "", "PEM file holding the CA chain")
	cmd.Flags().StringVar(&certFile, "cert", "", "PEM file holding the certificate")
	cmd.Flags().StringVar(&keyFile, "key", "", "PEM file holding the private key")
	_ = cmd.MarkFlagRequired("cert")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newCertsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete COMMON_NAME",
		Short: "Delete a certificate",
		Long:  "Delete the certificate issued for a common name",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			err = client.Certificates().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete certificate: %w", err)
			}

			return printDone(cmd, "Certificate for %s deleted", args[0])
		},
	}
}

func renderCertsTable(out io.Writer, certs []now.Certificate) error {
	if len(certs) == 0 {
		return printEmpty(out, "No certificates found")
	}

	table := tablewriter.NewWriter(out)
	table.Header("UID", "CN", "Created", "Expiration", "Auto Renew")

	for _, cert := range certs {
		_ = table.Append(cert.UID, cert.CN, valueOrNA(cert.Created), valueOrNA(cert.Expiration), yesNo(cert.AutoRenew))
	}

	return table.Render()
}
