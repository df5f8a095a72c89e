package thinking

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// StepKind tags the structural form of a Step field value.
type StepKind int

const (
	// StepEmpty covers both a blank field and text that reduces to neither
	// of the structured forms.
	StepEmpty StepKind = iota
	StepNumbered
	StepException
)

func (k StepKind) String() string {
	switch k {
	case StepNumbered:
		return "numbered"
	case StepException:
		return "exception"
	default:
		return "empty"
	}
}

// StepReference is the canonical reduction of a Step field: an ordered set of
// step numbers, the exception marker, or empty. The description text is
// carried for diagnostics but ignored for equality.
type StepReference struct {
	Kind        StepKind
	Steps       []int
	Description string
}

// ExceptionMarker is the literal exception tag used in Step fields.
const ExceptionMarker = "ngoại lệ"

var (
	numberedRe       = regexp.MustCompile(`^(\d+(?:\s*,\s*\d+)*)\s*-\s*(.+)$`)
	numberedValidRe  = regexp.MustCompile(`^\d+(?:\s*,\s*\d+)*\s*-\s*.+$`)
	exceptionValidRe = regexp.MustCompile(`(?i)^ngoại lệ\s*-\s*.+$`)
	numberListRe     = regexp.MustCompile(`\b\d+\s*,`)
)

// ParseStepReference reduces a Step field value to its canonical form.
// Numbered steps are sorted integers; anything that is
// neither numbered nor exception-tagged reduces to empty.
func ParseStepReference(content string) StepReference {
	content = strings.TrimSpace(content)
	if content == "" {
		return StepReference{Kind: StepEmpty}
	}

	if strings.HasPrefix(strings.ToLower(content), ExceptionMarker) {
		desc := strings.TrimSpace(content[len(ExceptionMarker):])
		desc = strings.TrimSpace(strings.TrimPrefix(desc, "-"))
		return StepReference{Kind: StepException, Description: desc}
	}

	match := numberedRe.FindStringSubmatch(content)
	if match == nil {
		return StepReference{Kind: StepEmpty}
	}

	parts := strings.Split(match[1], ",")
	steps := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return StepReference{Kind: StepEmpty}
		}
		steps = append(steps, n)
	}
	sort.Ints(steps)

	return StepReference{
		Kind:        StepNumbered,
		Steps:       steps,
		Description: strings.TrimSpace(match[2]),
	}
}

// StepsMatch compares two Step field values structurally: same sorted step
// numbers, both exception-tagged, or both empty. Descriptions are ignored.
func StepsMatch(a, b StepReference) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != StepNumbered {
		return true
	}
	if len(a.Steps) != len(b.Steps) {
		return false
	}
	for i := range a.Steps {
		if a.Steps[i] != b.Steps[i] {
			return false
		}
	}
	return true
}

// ValidStepFormat checks the Step field grammar:
//   - empty (procedure undetermined or irrelevant)
//   - "1, 2, 3 - description"
//   - "ngoại lệ - description", which must not also carry a step number list
func ValidStepFormat(content string) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return true
	}

	if exceptionValidRe.MatchString(content) {
		return !numberListRe.MatchString(content)
	}

	return numberedValidRe.MatchString(content)
}
