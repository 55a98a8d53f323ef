package commands

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/now-client/internal/constants"
	"github.com/fivetwenty-io/now-client/pkg/now"
)

// NewDeploymentsCommand creates the deployments command group.
func NewDeploymentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"deployment", "dpl"},
		Short:   "Manage deployments",
		Long:    "List, inspect, create and delete deployments and browse their files",
	}

	cmd.AddCommand(newDeploymentsListCommand())
	cmd.AddCommand(newDeploymentsGetCommand())
	cmd.AddCommand(newDeploymentsCreateCommand())
	cmd.AddCommand(newDeploymentsDeleteCommand())
	cmd.AddCommand(newDeploymentsFilesCommand())
	cmd.AddCommand(newDeploymentsFileCommand())

	return cmd
}

func newDeploymentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deployments",
		Long:  "List all deployments of the current user or team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			deployments, err := client.Deployments().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list deployments: %w", err)
			}

			return render(cmd, deployments, renderDeploymentsTable)
		},
	}
}

func newDeploymentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DEPLOYMENT_ID",
		Short: "Get deployment details",
		Long:  "Display detailed information about a specific deployment",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			deployment, err := client.Deployments().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get deployment: %w", err)
			}

			return render(cmd, deployment, renderDeploymentDetails)
		},
	}
}

func newDeploymentsCreateCommand() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a deployment",
		Long:    "Create a deployment from a JSON document holding the deployment body",
		Example: `  now deployments create --data '{"name": "my-app", "files": [{"file": "index.html", "data": "<h1>hi</h1>"}]}'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var body map[string]interface{}

			err := parseData(data, &body)
			if err != nil {
				return err
			}

			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			deployment, err := client.Deployments().Create(cmd.Context(), body)
			if err != nil {
				return fmt.Errorf("failed to create deployment: %w", err)
			}

			return render(cmd, deployment, renderDeploymentDetails)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "deployment body as JSON")

	return cmd
}

func newDeploymentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DEPLOYMENT_ID",
		Short: "Delete a deployment",
		Long:  "Delete a deployment and its instances",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			err = client.Deployments().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete deployment: %w", err)
			}

			return printDone(cmd, "Deployment %s deleted", args[0])
		},
	}
}

func newDeploymentsFilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "files DEPLOYMENT_ID",
		Short: "List deployment files",
		Long:  "List the file tree of a deployment",
		Args:  nonBlankArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			files, err := client.Deployments().ListFiles(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list deployment files: %w", err)
			}

			return render(cmd, files, renderFilesTable)
		},
	}
}

func newDeploymentsFileCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "file DEPLOYMENT_ID FILE_ID",
		Short: "Get a deployment file",
		Long:  "Print the content of a deployment file, or save it with --out",
		Args:  nonBlankArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := NewClient(cmd)
			if err != nil {
				return err
			}

			if out == "" {
				content, err := client.Deployments().GetFile(cmd.Context(), args[0], args[1])
				if err != nil {
					return fmt.Errorf("failed to get deployment file: %w", err)
				}

				_, err = io.WriteString(cmd.OutOrStdout(), content)

				return err
			}

			stream, err := client.Deployments().GetFileStream(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get deployment file: %w", err)
			}
			defer func() { _ = stream.Close() }()

			written, err := saveFile(out, stream)
			if err != nil {
				return err
			}

			return printDone(cmd, "Saved %d bytes to %s", written, out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write the file content to this path")

	return cmd
}

func saveFile(target string, content io.Reader) (int64, error) {
	file, err := appFs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.DownloadFilePerm)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", target, err)
	}

	written, err := io.Copy(file, content)
	if err != nil {
		_ = file.Close()

		return written, fmt.Errorf("failed to write %s: %w", target, err)
	}

	err = file.Close()
	if err != nil {
		return written, fmt.Errorf("failed to write %s: %w", target, err)
	}

	return written, nil
}

func renderDeploymentsTable(out io.Writer, deployments []now.Deployment) error {
	if len(deployments) == 0 {
		return printEmpty(out, "No deployments found")
	}

	table := tablewriter.NewWriter(out)
	table.Header("UID", "Name", "URL", "State", "Created")

	for _, deployment := range deployments {
		_ = table.Append(
			deployment.UID,
			valueOrNA(deployment.Name),
			valueOrNA(deployment.URL),
			valueOrNA(string(deployment.State)),
			valueOrNA(deployment.Created),
		)
	}

	return table.Render()
}

func renderDeploymentDetails(out io.Writer, deployment *now.Deployment) error {
	if deployment == nil {
		return printEmpty(out, "No deployment returned")
	}

	return renderProperties(out, []property{
		{Name: "UID", Value: deployment.UID},
		{Name: "Name", Value: deployment.Name},
		{Name: "URL", Value: deployment.URL},
		{Name: "Host", Value: deployment.Host},
		{Name: "State", Value: string(deployment.State)},
		{Name: "State Changed", Value: deployment.StateTs},
		{Name: "Created", Value: deployment.Created},
	})
}

func renderFilesTable(out io.Writer, files []now.DeploymentFile) error {
	if len(files) == 0 {
		return printEmpty(out, "No files found")
	}

	table := tablewriter.NewWriter(out)
	table.Header("Path", "Type", "UID")

	walkFiles(files, "", func(filePath string, file now.DeploymentFile) {
		_ = table.Append(filePath, file.Type, valueOrNA(file.UID))
	})

	return table.Render()
}

// walkFiles visits every node of a file tree in depth-first order.
func walkFiles(files []now.DeploymentFile, parent string, visit func(filePath string, file now.DeploymentFile)) {
	for _, file := range files {
		filePath := path.Join(parent, file.Name)

		visit(filePath, file)
		walkFiles(file.Children, filePath, visit)
	}
}
