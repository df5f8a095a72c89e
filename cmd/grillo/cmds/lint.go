package cmds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-go-golems/grillo/pkg/toolcall"
)

type lintIssue struct {
	Row      int      `json:"row"`
	Tool     string   `json:"tool,omitempty"`
	Tier     string   `json:"tier"`
	Raw      string   `json:"raw,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

type lintReport struct {
	Rows      int            `json:"rows"`
	Calls     int            `json:"calls"`
	TierCount map[string]int `json:"tier_count"`
	Issues    []lintIssue    `json:"issues,omitempty"`
}

// NewLintCommand builds the lint command, which checks every tool call in a
// dataset against the tool registry: parseability, tool name, required and
// unknown parameters, and full JSON-schema validation for calls that pass the
// coarse tiers.
func NewLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Lint the tool calls in a JSONL dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, _ := cmd.Flags().GetString("dataset")
			if dataset == "" {
				return errors.New("no dataset given, use --dataset")
			}
			strict, _ := cmd.Flags().GetBool("strict")

			rows, err := ReadDataset(dataset)
			if err != nil {
				return err
			}

			registry := toolcall.DefaultRegistry()
			report := lintReport{
				Rows:      len(rows),
				TierCount: map[string]int{},
			}

			for i, row := range rows {
				for _, span := range toolcall.Spans(row.Completion) {
					report.Calls++
					inv := toolcall.Parse(span)
					tier := registry.Validate(inv)
					report.TierCount[tier.String()]++

					issue := lintIssue{
						Row:  i,
						Tool: inv.Name,
						Tier: tier.String(),
					}
					if tier < toolcall.TierValid {
						issue.Raw = span
						report.Issues = append(report.Issues, issue)
						continue
					}

					schema, _ := registry.Lookup(inv.Name)
					problems, err := schema.ValidateStrict(inv.Arguments)
					if err != nil {
						return errors.Wrapf(err, "row %d: schema validation", i)
					}
					if len(problems) > 0 {
						issue.Problems = problems
						report.Issues = append(report.Issues, issue)
					}
				}
			}

			payload, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return errors.Wrap(err, "could not marshal report")
			}
			fmt.Println(string(payload))

			if strict && len(report.Issues) > 0 {
				// keep the report on stdout, signal failure through the exit code
				fmt.Fprintf(os.Stderr, "lint: %d issues found\n", len(report.Issues))
				return errors.Errorf("%d tool call issues", len(report.Issues))
			}
			return nil
		},
	}

	cmd.Flags().String("dataset", "", "JSONL dataset of {completion, reference} rows")
	cmd.Flags().Bool("strict", false, "Exit non-zero when any issue is found")

	return cmd
}
