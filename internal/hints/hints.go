// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-chat2html/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-chat2html) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-chat2html") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoConversation returns hints when the snapshot holds no conversation.
func ForNoConversation() string {
	return format("save the full conversation page, not a partial selection")
}

// ForStreaming returns hints when a conversion is refused mid-generation.
func ForStreaming() string {
	return format("wait for the response to finish, save the page again, and retry")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForRemoteImages returns hints when images could not be embedded offline.
func ForRemoteImages() string {
	return format("save the page with its resources so images resolve locally")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
