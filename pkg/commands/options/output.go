package options

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// OutputOptions
type OutputOptions struct {
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Output, "output", "o", OutputText,
		"Output format. One of 'text', 'json' or 'yaml'.")
}

func (o *OutputOptions) Validate() error {
	switch strings.ToLower(o.Output) {
	case "", OutputText, OutputJSON, OutputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q", o.Output)
}

// Structured reports whether results should be encoded instead of printed.
func (o *OutputOptions) Structured() bool {
	f := strings.ToLower(o.Output)
	return f == OutputJSON || f == OutputYAML
}

// Encode writes v as JSON or YAML.
func (o *OutputOptions) Encode(w io.Writer, v interface{}) error {
	if w == nil {
		w = color.Output
	}
	switch strings.ToLower(o.Output) {
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func (o *OutputOptions) HandleError(err error) error {
	if o.Structured() && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		if encErr := o.Encode(nil, out); encErr != nil {
			return encErr
		}
		return nil
	}
	return err
}
