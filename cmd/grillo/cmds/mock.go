package cmds

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-go-golems/grillo/pkg/mocktools"
	"github.com/go-go-golems/grillo/pkg/toolcall"
)

// NewMockCommand builds the mock command, which invokes the deterministic
// tool simulators. Useful to preview the fixtures a rollout environment will
// hand the model for a given call.
func NewMockCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock <tool> [key=value...]",
		Short: "Invoke a deterministic tool simulator",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("call")
			if len(args) == 0 && raw == "" {
				return errors.New("no tool given, pass a tool name or --call")
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
				args = args[1:]
			}

			arguments := map[string]interface{}{}
			if payload, _ := cmd.Flags().GetString("args"); payload != "" {
				if err := json.Unmarshal([]byte(payload), &arguments); err != nil {
					return errors.Wrap(err, "could not parse --args")
				}
			}
			for _, pair := range args {
				key, value, found := strings.Cut(pair, "=")
				if !found {
					return errors.Errorf("argument %q is not key=value", pair)
				}
				arguments[key] = value
			}

			if raw != "" {
				// accept a full tool call in any of the dataset dialects
				inv := toolcall.Parse(raw)
				if !inv.Parsed {
					return errors.Errorf("could not parse tool call %q", raw)
				}
				name = inv.Name
				arguments = inv.Arguments
			}

			sim := mocktools.NewSimulator()
			result, err := sim.Call(name, arguments)
			if err != nil {
				return err
			}

			payload, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return errors.Wrap(err, "could not marshal result")
			}
			fmt.Println(string(payload))
			return nil
		},
	}

	cmd.Flags().String("args", "", "Tool arguments as a JSON object")
	cmd.Flags().String("call", "", "Full tool call text, overrides <tool> and key=value args")

	return cmd
}
