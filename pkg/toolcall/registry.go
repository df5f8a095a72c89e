package toolcall

import (
	"sort"

	"github.com/invopop/jsonschema"
)

// Schema declares a tool's parameter surface: required and optional parameter
// names are disjoint sets. Read-only at scoring time.
type Schema struct {
	Name        string
	Description string
	Required    []string
	Optional    []string

	// args is the typed arguments struct the JSON schema is reflected from.
	args any
}

// Params returns every declared parameter name, required first.
func (s Schema) Params() []string {
	ret := make([]string, 0, len(s.Required)+len(s.Optional))
	ret = append(ret, s.Required...)
	ret = append(ret, s.Optional...)
	return ret
}

// Definition reflects the tool's typed arguments into a JSON schema, inline
// and without $refs, the shape provider APIs expect.
func (s Schema) Definition() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	return reflector.Reflect(s.args)
}

// Registry is the fixed set of support tools, versioned alongside the engine.
type Registry struct {
	schemas map[string]Schema
}

func (r *Registry) Lookup(name string) (Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	ret := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

type LookupStoreInfoArgs struct {
	StoreCode       string `json:"store_code,omitempty" jsonschema:"description=Outlet store code"`
	Phone           string `json:"phone,omitempty" jsonschema:"description=Registered phone number"`
	DistributorCode string `json:"distributor_code,omitempty" jsonschema:"description=Distributor code"`
}

type CheckRelationshipArgs struct {
	OutletID      string `json:"outlet_id" jsonschema:"description=Outlet identifier"`
	DistributorID string `json:"distributor_id,omitempty" jsonschema:"description=Distributor or SubD identifier"`
}

type CheckOrderStatusArgs struct {
	OrderCode string `json:"order_code" jsonschema:"description=Order code"`
	Channel   string `json:"channel" jsonschema:"description=Order channel"`
}

type CreateTicketArgs struct {
	Team        string `json:"team" jsonschema:"description=Team the ticket is routed to"`
	Description string `json:"description" jsonschema:"description=Issue description"`
	Payload     string `json:"payload" jsonschema:"description=Structured data attached to the ticket"`
}

type ForceSyncArgs struct {
	OutletID      string `json:"outlet_id" jsonschema:"description=Outlet identifier"`
	DistributorID string `json:"distributor_id,omitempty" jsonschema:"description=Distributor or SubD identifier"`
}

type SendGuideArgs struct {
	GuideType string `json:"guide_type" jsonschema:"description=Which SOP guide to send"`
}

// DefaultRegistry returns the six-tool registry of the customer-support
// engine.
func DefaultRegistry() *Registry {
	schemas := []Schema{
		{
			Name:        "lookup_store_info",
			Description: "Look up outlet or distributor master data",
			Optional:    []string{"store_code", "phone", "distributor_code"},
			args:        LookupStoreInfoArgs{},
		},
		{
			Name:        "check_relationship",
			Description: "Check the outlet to distributor/SubD relationship",
			Required:    []string{"outlet_id"},
			Optional:    []string{"distributor_id"},
			args:        CheckRelationshipArgs{},
		},
		{
			Name:        "check_order_status",
			Description: "Check an order's status on a given channel",
			Required:    []string{"order_code", "channel"},
			args:        CheckOrderStatusArgs{},
		},
		{
			Name:        "create_ticket",
			Description: "Create an escalation ticket",
			Required:    []string{"team", "description", "payload"},
			args:        CreateTicketArgs{},
		},
		{
			Name:        "force_sync",
			Description: "Force a SEM data sync for an outlet",
			Required:    []string{"outlet_id"},
			Optional:    []string{"distributor_id"},
			args:        ForceSyncArgs{},
		},
		{
			Name:        "send_guide",
			Description: "Send an SOP guide to the customer",
			Required:    []string{"guide_type"},
			args:        SendGuideArgs{},
		},
	}

	ret := &Registry{schemas: map[string]Schema{}}
	for _, s := range schemas {
		ret.schemas[s.Name] = s
	}
	return ret
}
