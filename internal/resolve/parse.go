package resolve

import (
	"encoding/json"
	"fmt"
	"strings"

	"atlas/internal/intent"
)

// ParseIntent decodes a raw model response into a validated intent.
// Models wrap JSON in markdown fences despite instructions; strip the
// noise before decoding. A payload that fails to decode or validate is a
// transient failure of the provider that produced it.
func ParseIntent(raw string) (*intent.Intent, error) {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var it intent.Intent
	if err := json.Unmarshal([]byte(clean), &it); err != nil {
		return nil, fmt.Errorf("unmarshal intent: %w (raw: %s)", err, raw)
	}

	it.Normalize()
	if err := it.Validate(); err != nil {
		return nil, fmt.Errorf("invalid intent payload: %w", err)
	}
	return &it, nil
}
