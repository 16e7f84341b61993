package errors

import "github.com/vango-dev/markup/pkg/schema"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://markup.vango.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Schema Errors (M101-M199)
	// ============================================

	schema.CodeAttributeNotPermitted: {
		Category: CategorySchema,
		Message:  "Attribute not permitted",
		Detail:   "The element does not accept this attribute.",
		DocURL:   docBase + schema.CodeAttributeNotPermitted,
	},
	schema.CodeChildNotPermitted: {
		Category: CategorySchema,
		Message:  "Child not permitted",
		Detail:   "The element's content model does not allow this child here.",
		DocURL:   docBase + schema.CodeChildNotPermitted,
	},
	schema.CodeInvalidAttributeValue: {
		Category: CategorySchema,
		Message:  "Invalid attribute value",
		Detail:   "The value is outside the attribute's domain. Values are never coerced.",
		DocURL:   docBase + schema.CodeInvalidAttributeValue,
	},
	"M104": {
		Category: CategorySchema,
		Message:  "Malformed node",
		Detail:   "A node in the tree is structurally invalid, for example a nil child, an element carrying text, or a node linked twice.",
		DocURL:   docBase + "M104",
	},
	"M105": {
		Category: CategorySchema,
		Message:  "Unknown element",
		Detail:   "The tag name does not name a supported element.",
		DocURL:   docBase + "M105",
	},
	"M106": {
		Category: CategorySchema,
		Message:  "Patch target not found",
		Detail:   "A patch addresses a node that does not exist in the tree it is applied to.",
		DocURL:   docBase + "M106",
	},

	// ============================================
	// Source Errors (M201-M299)
	// ============================================

	"M201": {
		Category: CategorySource,
		Message:  "Unsupported document format",
		Detail:   "Document files must end in .json, .yaml, .yml or .toml.",
		DocURL:   docBase + "M201",
	},
	"M202": {
		Category: CategorySource,
		Message:  "Document decode failed",
		Detail:   "The document file is not valid JSON, YAML or TOML.",
		DocURL:   docBase + "M202",
	},
	"M203": {
		Category: CategorySource,
		Message:  "Malformed document node",
		Detail:   "Each node must be a string (text), or a map with exactly one element key, or a map with a single raw key.",
		DocURL:   docBase + "M203",
	},

	// ============================================
	// Render Errors (M301-M399)
	// ============================================

	"M301": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "Writing rendered output failed.",
		DocURL:   docBase + "M301",
	},

	// ============================================
	// Config Errors (M401-M499)
	// ============================================

	"M401": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file contains invalid values.",
		DocURL:   docBase + "M401",
	},
	"M402": {
		Category: CategoryConfig,
		Message:  "Configuration file unreadable",
		Detail:   "markup.json or markup.toml could not be read or parsed.",
		DocURL:   docBase + "M402",
	},

	// ============================================
	// Server Errors (M501-M599)
	// ============================================

	"M501": {
		Category: CategoryServer,
		Message:  "Cache unavailable",
		Detail:   "The render cache could not be reached. Rendering continues without it.",
		DocURL:   docBase + "M501",
	},
	"M502": {
		Category: CategoryServer,
		Message:  "Server failed to start",
		Detail:   "The preview server could not listen on the configured address.",
		DocURL:   docBase + "M502",
	},

	// ============================================
	// Publish Errors (M601-M699)
	// ============================================

	"M601": {
		Category: CategoryPublish,
		Message:  "Publish failed",
		Detail:   "Uploading a rendered document to the bucket failed.",
		DocURL:   docBase + "M601",
	},
	"M602": {
		Category: CategoryPublish,
		Message:  "Publish target missing",
		Detail:   "No bucket is configured. Set publish.bucket in the configuration or pass --bucket.",
		DocURL:   docBase + "M602",
	},

	// ============================================
	// Other
	// ============================================

	"M901": {
		Category: CategoryCLI,
		Message:  "Unexpected error",
		DocURL:   docBase + "M901",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
