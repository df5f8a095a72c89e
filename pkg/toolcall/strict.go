package toolcall

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// ValidateStrict checks arguments against the tool's reflected JSON schema,
// beyond the name-set tiers: types, additional properties, and the
// lookup_store_info at-least-one-argument advisory. Used by the dataset
// linter, not by reward scoring.
func (s Schema) ValidateStrict(arguments map[string]any) ([]string, error) {
	definition, err := json.Marshal(s.Definition())
	if err != nil {
		return nil, errors.Wrapf(err, "could not marshal schema for %s", s.Name)
	}

	if arguments == nil {
		arguments = map[string]any{}
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(definition),
		gojsonschema.NewGoLoader(arguments),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "schema validation failed for %s", s.Name)
	}

	issues := []string{}
	for _, resultError := range result.Errors() {
		issues = append(issues, resultError.String())
	}

	// tools with no required parameters still need at least one argument to
	// be actionable
	if len(s.Required) == 0 && len(arguments) == 0 {
		issues = append(issues, "at least one argument is required")
	}

	return issues, nil
}
