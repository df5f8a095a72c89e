package toolcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTiers(t *testing.T) {
	registry := DefaultRegistry()

	testCases := []struct {
		name string
		raw  string
		tier Tier
	}{
		{"fully valid", `check_relationship({"outlet_id": "63235514"})`, TierValid},
		{"valid with optional", `check_relationship({"outlet_id": "1", "distributor_id": "2"})`, TierValid},
		{"missing required", `check_relationship({})`, TierMissingRequired},
		{"unknown param", `check_relationship({"outlet_id": "1", "region": "north"})`, TierUnknownParam},
		{"unknown tool", `reset_password({"outlet_id": "1"})`, TierUnknownTool},
		{"unparseable", `call the tool please`, TierUnparseable},
		{"zero required tool", `lookup_store_info({})`, TierValid},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tier := registry.Validate(Parse(tc.raw))
			assert.Equal(t, tc.tier, tier)
			assert.Equal(t, tc.tier.Weight(), registry.Validate(Parse(tc.raw)).Weight())
		})
	}
}

func TestTierOrderingMonotonic(t *testing.T) {
	tiers := []Tier{
		TierNoToolCall,
		TierUnparseable,
		TierUnknownTool,
		TierMissingRequired,
		TierUnknownParam,
		TierValid,
	}
	for i := 1; i < len(tiers); i++ {
		assert.Greater(t, tiers[i].Weight(), tiers[i-1].Weight(),
			"%s must outweigh %s", tiers[i], tiers[i-1])
	}
	assert.Equal(t, 0.0, TierNoToolCall.Weight())
	assert.Equal(t, 1.0, TierValid.Weight())
}

func TestRegistryShape(t *testing.T) {
	registry := DefaultRegistry()

	require.Len(t, registry.Names(), 6)

	schema, ok := registry.Lookup("create_ticket")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"team", "description", "payload"}, schema.Required)
	assert.Empty(t, schema.Optional)

	schema, ok = registry.Lookup("lookup_store_info")
	require.True(t, ok)
	assert.Empty(t, schema.Required)
	assert.ElementsMatch(t, []string{"store_code", "phone", "distributor_code"}, schema.Optional)

	_, ok = registry.Lookup("unknown_tool")
	assert.False(t, ok)
}

func TestSchemaDefinition(t *testing.T) {
	registry := DefaultRegistry()
	schema, _ := registry.Lookup("check_order_status")

	definition := schema.Definition()
	require.NotNil(t, definition)
	assert.Contains(t, definition.Required, "order_code")
	assert.Contains(t, definition.Required, "channel")
}

func TestValidateStrict(t *testing.T) {
	registry := DefaultRegistry()

	schema, _ := registry.Lookup("check_relationship")
	issues, err := schema.ValidateStrict(map[string]any{"outlet_id": "63235514"})
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = schema.ValidateStrict(map[string]any{"distributor_id": "NPP01"})
	require.NoError(t, err)
	assert.NotEmpty(t, issues)

	// zero-required tools still need at least one argument
	schema, _ = registry.Lookup("lookup_store_info")
	issues, err = schema.ValidateStrict(map[string]any{})
	require.NoError(t, err)
	assert.NotEmpty(t, issues)
}
