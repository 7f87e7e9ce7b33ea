package catalog

// CodingPrefixes lists identifier prefixes of models suited for coding work.
var CodingPrefixes = []string{
	"anthropic/claude",
	"openai/gpt-4",
	"openai/o1",
	"openai/o3",
	"google/gemini",
	"deepseek/deepseek",
	"meta-llama/llama",
	"qwen/qwen",
	"mistralai/mistral",
	"mistralai/codestral",
	"x-ai/grok",
}

// DefaultAliases maps shorthands accepted by --model to full identifiers.
var DefaultAliases = map[string]string{
	"sonnet":     "anthropic/claude-sonnet-4",
	"sonnet4":    "anthropic/claude-sonnet-4",
	"opus":       "anthropic/claude-opus-4",
	"opus4":      "anthropic/claude-opus-4",
	"haiku":      "anthropic/claude-haiku",
	"flash":      "google/gemini-2.0-flash",
	"gemini":     "google/gemini-2.5-pro",
	"gemini-pro": "google/gemini-2.5-pro",
	"gpt4":       "openai/gpt-4o",
	"gpt4o":      "openai/gpt-4o",
	"gpt4-mini":  "openai/gpt-4o-mini",
	"gpt4o-mini": "openai/gpt-4o-mini",
	"deepseek":   "deepseek/deepseek-chat-v3",
	"llama":      "meta-llama/llama-3.3-70b-instruct",
	"llama3":     "meta-llama/llama-3.3-70b-instruct",
	"qwen":       "qwen/qwen-2.5-coder-32b-instruct",
	"qwen-coder": "qwen/qwen-2.5-coder-32b-instruct",
}

// Fallback returns the built-in catalog used when neither the cache nor the
// API can provide one.
func Fallback() Catalog {
	return Catalog{
		{ID: "anthropic/claude-sonnet-4", InputPrice: 3, OutputPrice: 15},
		{ID: "anthropic/claude-opus-4", InputPrice: 15, OutputPrice: 75},
		{ID: "anthropic/claude-haiku", InputPrice: 0.25, OutputPrice: 1.25},
		{ID: "google/gemini-2.0-flash", InputPrice: 0.10, OutputPrice: 0.40},
		{ID: "google/gemini-2.5-pro", InputPrice: 1.25, OutputPrice: 10},
		{ID: "openai/gpt-4o", InputPrice: 2.50, OutputPrice: 10},
		{ID: "openai/gpt-4o-mini", InputPrice: 0.15, OutputPrice: 0.60},
		{ID: "deepseek/deepseek-chat-v3", InputPrice: 0.14, OutputPrice: 0.28},
		{ID: "meta-llama/llama-3.3-70b-instruct", InputPrice: 0.30, OutputPrice: 0.40},
		{ID: "qwen/qwen-2.5-coder-32b-instruct", InputPrice: 0.20, OutputPrice: 0.20},
	}
}
