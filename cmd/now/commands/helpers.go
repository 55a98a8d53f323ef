package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/now-client/internal/constants"
	"github.com/fivetwenty-io/now-client/pkg/now"
	"github.com/fivetwenty-io/now-client/pkg/nowclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Yes          = "yes"
	No           = "no"

	// JSON and YAML indentation.
	defaultIndent = 2

	userAgent = "now-cli"
)

// Common static errors used throughout the commands package.
var (
	ErrBlankArgument   = errors.New("argument must not be blank")
	ErrInvalidData     = errors.New("invalid --data value")
	ErrDataRequired    = errors.New("--data is required")
	ErrUnsupportedType = errors.New("unsupported output format")
)

// appFs is the filesystem certificate files are read from and downloads are written to.
var appFs = afero.NewOsFs()

// AddGlobalFlags registers the flags shared by every command.
func AddGlobalFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "config file (default is $HOME/.now/config.yml)")
	flags.StringP("api", "a", constants.DefaultBaseURL, "API endpoint URL")
	flags.StringP("token", "T", "", "Now API token (default: discovered from ~/.now.json, NOW_TOKEN)")
	flags.StringP("team", "t", "", "Now API team, only used together with --token")
	flags.StringP("output", "o", constants.FormatJSON, "output format (table, json, yaml)")
	flags.Duration("timeout", constants.DefaultHTTPTimeout, "request timeout")
	flags.BoolP("verbose", "v", false, "log every request and response to stderr")
}

// setting returns a flag value when it was set on the command line, then the value
// viper holds for name (config file or NOW_* environment), then the flag default.
func setting(cmd *cobra.Command, name string) string {
	flag := cmd.Flag(name)
	if flag != nil && flag.Changed {
		return flag.Value.String()
	}

	if value := viper.GetString(name); value != "" {
		return value
	}

	if flag != nil {
		return flag.Value.String()
	}

	return ""
}

func outputFormat(cmd *cobra.Command) string {
	return strings.ToLower(setting(cmd, "output"))
}

// NewClient builds a client from the global flags. An explicit --token selects the
// token (and optional --team) path; otherwise credentials are discovered.
func NewClient(cmd *cobra.Command) (now.Client, error) {
	opts := []nowclient.Option{
		nowclient.WithBaseURL(setting(cmd, "api")),
		nowclient.WithUserAgent(userAgent),
	}

	if timeout, err := time.ParseDuration(setting(cmd, "timeout")); err == nil && timeout > 0 {
		opts = append(opts, nowclient.WithTimeout(timeout))
	}

	if setting(cmd, "verbose") == "true" {
		opts = append(opts,
			nowclient.WithLogger(newStderrLogger(cmd.ErrOrStderr())),
			nowclient.WithDebug(true),
		)
	}

	token := flagValue(cmd, "token")
	if strings.TrimSpace(token) == "" {
		client, err := nowclient.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}

		return client, nil
	}

	client, err := nowclient.NewWithTeam(token, flagValue(cmd, "team"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func flagValue(cmd *cobra.Command, name string) string {
	flag := cmd.Flag(name)
	if flag == nil {
		return ""
	}

	return flag.Value.String()
}

// slogLogger writes transport log lines through log/slog when --verbose is set.
type slogLogger struct {
	logger *slog.Logger
}

func newStderrLogger(out io.Writer) *slogLogger {
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})

	return &slogLogger{logger: slog.New(handler)}
}

func (l *slogLogger) Debug(msg string, fields map[string]interface{}) { l.log(slog.LevelDebug, msg, fields) }
func (l *slogLogger) Info(msg string, fields map[string]interface{})  { l.log(slog.LevelInfo, msg, fields) }
func (l *slogLogger) Warn(msg string, fields map[string]interface{})  { l.log(slog.LevelWarn, msg, fields) }
func (l *slogLogger) Error(msg string, fields map[string]interface{}) { l.log(slog.LevelError, msg, fields) }

func (l *slogLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		attrs = append(attrs, slog.Any(key, fields[key]))
	}

	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// nonBlankArgs requires exactly n arguments, none of them blank.
func nonBlankArgs(n int) cobra.PositionalArgs {
	return cobra.MatchAll(cobra.ExactArgs(n), noBlankArgs)
}

// minNonBlankArgs requires at least n arguments, none of them blank.
func minNonBlankArgs(n int) cobra.PositionalArgs {
	return cobra.MatchAll(cobra.MinimumNArgs(n), noBlankArgs)
}

func noBlankArgs(_ *cobra.Command, args []string) error {
	for i, arg := range args {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("argument %d: %w", i+1, ErrBlankArgument)
		}
	}

	return nil
}

// OutputRenderer handles different output formats.
type OutputRenderer[T any] struct {
	RenderJSON  func(data T) error
	RenderYAML  func(data T) error
	RenderTable func(data T) error
}

// Render outputs data in the specified format.
func (o *OutputRenderer[T]) Render(data T, format string) error {
	switch format {
	case constants.FormatJSON:
		return o.RenderJSON(data)
	case constants.FormatYAML:
		return o.RenderYAML(data)
	case constants.FormatTable:
		return o.RenderTable(data)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, format)
	}
}

// render writes data to the command's output in the selected format.
func render[T any](cmd *cobra.Command, data T, table func(out io.Writer, data T) error) error {
	out := cmd.OutOrStdout()

	renderer := &OutputRenderer[T]{
		RenderJSON:  func(data T) error { return StandardJSONRenderer(out, data) },
		RenderYAML:  func(data T) error { return StandardYAMLRenderer(out, data) },
		RenderTable: func(data T) error { return table(out, data) },
	}

	return renderer.Render(data, outputFormat(cmd))
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](out io.Writer, data T) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", defaultIndent))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](out io.Writer, data T) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(defaultIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// property is one row of a two-column detail table.
type property struct {
	Name  string
	Value string
}

func renderProperties(out io.Writer, properties []property) error {
	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")

	for _, p := range properties {
		_ = table.Append(p.Name, valueOrNA(p.Value))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderResult writes a single named value, such as a uid returned by the API.
func renderResult(cmd *cobra.Command, key, value string) error {
	return render(cmd, map[string]string{key: value}, func(out io.Writer, data map[string]string) error {
		return renderProperties(out, []property{{Name: key, Value: data[key]}})
	})
}

// printEmpty writes the message shown in table mode when a list is empty.
func printEmpty(out io.Writer, message string) error {
	_, err := fmt.Fprintln(out, message)

	return err
}

func printDone(cmd *cobra.Command, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)

	return err
}

func valueOrNA(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}

func yesNo(value bool) string {
	if value {
		return Yes
	}

	return No
}

func formatTime(value *time.Time) string {
	if value == nil || value.IsZero() {
		return NotAvailable
	}

	return value.Format(constants.DateFormat)
}

// parseData decodes the JSON document given with --data into target.
func parseData(data string, target interface{}) error {
	if strings.TrimSpace(data) == "" {
		return ErrDataRequired
	}

	err := json.Unmarshal([]byte(data), target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	return nil
}

func readFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}
