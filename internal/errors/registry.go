package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Config errors (E001-E099)

	"E001": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "simph looks for simph.json in the working directory. Run 'simph init' to create one, or pass --config with an explicit path.",
	},
	"E002": {
		Category: CategoryConfig,
		Message:  "Configuration file is not valid JSON",
		Detail:   "The configuration file could not be parsed. Check for trailing commas, unquoted keys, or comments, none of which JSON allows.",
	},
	"E003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration field has a value outside its accepted range or format.",
	},
	"E004": {
		Category: CategoryConfig,
		Message:  "Pages directory not found",
		Detail:   "The configured pages directory does not exist. Resolved pages cannot be rendered without it.",
	},

	// Routing errors (E101-E199)

	"E101": {
		Category: CategoryRouting,
		Message:  "Malformed route pattern",
		Detail:   "The route pattern could not be compiled. Patterns must start with '/', balance their parentheses, and hold exactly one placeholder per optional span.",
	},
	"E102": {
		Category: CategoryRouting,
		Message:  "Invalid parameter expression",
		Detail:   "A parameter's regular expression override failed to compile or contains a capturing group. Use (?:...) for grouping inside overrides.",
	},
	"E103": {
		Category: CategoryRouting,
		Message:  "Route generation failed",
		Detail:   "A URL could not be generated because a required parameter has neither a supplied value nor a default.",
	},

	// Page errors (E201-E299)

	"E201": {
		Category: CategoryPage,
		Message:  "Page not found",
		Detail:   "No page file exists for the resolved identifier.",
	},
	"E202": {
		Category: CategoryPage,
		Message:  "Page template failed to parse",
		Detail:   "The page file exists but its template syntax is invalid.",
	},

	// CLI errors (E301-E399)

	"E301": {
		Category: CategoryCLI,
		Message:  "Invalid command usage",
		Detail:   "The command was invoked with missing or conflicting arguments. Run with --help for usage.",
	},
}

// Register adds a custom error template at the given code. Existing
// codes are overwritten.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
