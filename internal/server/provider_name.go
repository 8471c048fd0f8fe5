package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/mlb-gif-service/internal/providers"
)

// normalizeSourceName returns a lower-cased source name, deriving it from the instance when not configured.
// Shared by source selection and the retry wrapper so metrics and logs agree.
func normalizeSourceName(raw string, source providers.GameSource) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if source != nil {
		return strings.ToLower(fmt.Sprintf("%T", source))
	}
	return "provider"
}
