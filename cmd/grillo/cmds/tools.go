package cmds

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-go-golems/grillo/pkg/toolcall"
)

// NewToolsCommand builds the tools command group for inspecting the tool
// registry.
func NewToolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the support tool registry",
	}

	cmd.AddCommand(newToolsListCommand())
	cmd.AddCommand(newToolsSchemaCommand())

	return cmd
}

func newToolsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered tools and their parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := toolcall.DefaultRegistry()
			for _, name := range registry.Names() {
				schema, _ := registry.Lookup(name)
				fmt.Printf("%s: %s\n", schema.Name, schema.Description)
				if len(schema.Required) > 0 {
					fmt.Printf("  required: %s\n", strings.Join(schema.Required, ", "))
				}
				if len(schema.Optional) > 0 {
					fmt.Printf("  optional: %s\n", strings.Join(schema.Optional, ", "))
				}
			}
			return nil
		},
	}
}

func newToolsSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [tool...]",
		Short: "Print tools as JSON schemas, for provider tool definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := toolcall.DefaultRegistry()

			names := args
			if len(names) == 0 {
				names = registry.Names()
			}

			definitions := map[string]interface{}{}
			for _, name := range names {
				schema, ok := registry.Lookup(name)
				if !ok {
					return errors.Errorf("unknown tool %q, available tools: %v", name, registry.Names())
				}
				definitions[name] = schema.Definition()
			}

			payload, err := json.MarshalIndent(definitions, "", "  ")
			if err != nil {
				return errors.Wrap(err, "could not marshal schemas")
			}
			fmt.Println(string(payload))
			return nil
		},
	}
}
