package toolcall

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// The dialects, in priority order:
//
//	1. name({"key": "value"})        call style
//	2. name{...}, name:{...}         bare object
//	3. name(key=value, key2=value2)  keyword arguments
//	4. {"name": ..., "arguments": ...} and the tool/params, tool_name/params
//	   key-pair variants              JSON object
var (
	callStyleRe  = regexp.MustCompile(`(?s)^(\w+)\s*\(\s*(\{.*\})\s*\)$`)
	bareObjectRe = regexp.MustCompile(`(?s)^(\w+)\s*:*\s*(\{.*\})$`)
	keywordRe    = regexp.MustCompile(`(?s)^(\w+)\s*\(([^{}]+)\)$`)
)

type parseStrategy func(string) (Invocation, bool)

var strategies = []parseStrategy{
	parseCallStyle,
	parseBareObject,
	parseKeywordArgs,
	parseJSONObject,
}

// Parse canonicalizes one raw tool-invocation payload. When no dialect
// matches, it returns the parse-failed sentinel carrying the raw text;
// it never fails upward.
func Parse(raw string) Invocation {
	trimmed := strings.TrimSpace(raw)
	for _, strategy := range strategies {
		if inv, ok := strategy(trimmed); ok {
			inv.Raw = raw
			return inv
		}
	}
	log.Debug().Str("raw", raw).Msg("toolcall: no dialect matched")
	return Invocation{Raw: raw}
}

func parseCallStyle(s string) (Invocation, bool) {
	match := callStyleRe.FindStringSubmatch(s)
	if match == nil {
		return Invocation{}, false
	}
	return Invocation{
		Name:      match[1],
		Arguments: parseArgumentsObject(match[2]),
		Parsed:    true,
	}, true
}

func parseBareObject(s string) (Invocation, bool) {
	match := bareObjectRe.FindStringSubmatch(s)
	if match == nil {
		return Invocation{}, false
	}
	return Invocation{
		Name:      match[1],
		Arguments: parseArgumentsObject(match[2]),
		Parsed:    true,
	}, true
}

func parseKeywordArgs(s string) (Invocation, bool) {
	match := keywordRe.FindStringSubmatch(s)
	if match == nil {
		return Invocation{}, false
	}
	arguments := map[string]any{}
	for _, part := range strings.Split(match[2], ",") {
		part = strings.TrimSpace(part)
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"`)
		value = strings.Trim(value, `'`)
		arguments[strings.TrimSpace(key)] = value
	}
	return Invocation{
		Name:      match[1],
		Arguments: arguments,
		Parsed:    true,
	}, true
}

func parseJSONObject(s string) (Invocation, bool) {
	parsed, ok := parseObject(s)
	if !ok {
		return Invocation{}, false
	}

	for _, keys := range [][2]string{
		{"name", "arguments"},
		{"tool", "params"},
		{"tool_name", "params"},
	} {
		name, ok := parsed[keys[0]].(string)
		if !ok || name == "" {
			continue
		}
		return Invocation{
			Name:      name,
			Arguments: normalizeArguments(parsed[keys[1]]),
			Parsed:    true,
		}, true
	}

	// a JSON object without a recognized key pair is still unparseable
	return Invocation{}, false
}

// parseArgumentsObject runs the two-stage argument parse: strict JSON first,
// then the permissive literal parser that tolerates single-quoted objects.
// Giving up records an empty arguments mapping.
func parseArgumentsObject(s string) map[string]any {
	obj, ok := parseObject(s)
	if !ok {
		log.Debug().Str("args", s).Msg("toolcall: unparseable arguments object, recording empty mapping")
		return map[string]any{}
	}
	return obj
}

func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		return obj, true
	}
	value, err := parseLiteral(s)
	if err != nil {
		return nil, false
	}
	obj, ok := value.(map[string]any)
	return obj, ok
}

// normalizeArguments converts the arguments value of a JSON-object dialect
// into a mapping; string-valued arguments go through the two-stage parse.
func normalizeArguments(v any) map[string]any {
	switch args := v.(type) {
	case map[string]any:
		return args
	case string:
		return parseArgumentsObject(args)
	default:
		return map[string]any{}
	}
}
