package toolcall

// Tier is the ordered validity level of a tool invocation. Higher tiers are
// closer to a correct call; each maps to a fixed partial-credit weight so the
// training signal gets a gradient instead of a cliff.
type Tier int

const (
	TierNoToolCall Tier = iota
	TierUnparseable
	TierUnknownTool
	TierMissingRequired
	TierUnknownParam
	TierValid
)

var tierNames = map[Tier]string{
	TierNoToolCall:      "no-tool-call",
	TierUnparseable:     "unparseable",
	TierUnknownTool:     "unknown-tool",
	TierMissingRequired: "missing-required",
	TierUnknownParam:    "unknown-param",
	TierValid:           "valid",
}

var tierWeights = map[Tier]float64{
	TierNoToolCall:      0.0,
	TierUnparseable:     0.2,
	TierUnknownTool:     0.3,
	TierMissingRequired: 0.5,
	TierUnknownParam:    0.6,
	TierValid:           1.0,
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// Weight maps the tier to its partial-credit reward.
func (t Tier) Weight() float64 {
	return tierWeights[t]
}

// Validate classifies a canonical invocation against the registry. The
// no-tool-call tier is the caller's to assign when no span exists at all.
func (r *Registry) Validate(inv Invocation) Tier {
	if !inv.Parsed {
		return TierUnparseable
	}

	schema, ok := r.Lookup(inv.Name)
	if !ok {
		return TierUnknownTool
	}

	for _, required := range schema.Required {
		if _, ok := inv.Arguments[required]; !ok {
			return TierMissingRequired
		}
	}

	declared := map[string]struct{}{}
	for _, param := range schema.Params() {
		declared[param] = struct{}{}
	}
	for param := range inv.Arguments {
		if _, ok := declared[param]; !ok {
			return TierUnknownParam
		}
	}

	return TierValid
}
