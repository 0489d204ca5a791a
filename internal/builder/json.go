package builder

import "encoding/json"

// ConfigJSON renders a configuration as deterministic, two-space indented
// JSON for the preview pane and export. A nil configuration yields the
// literal "{}". Marshal failures cannot occur for trees built through the
// editor; if content somehow carries an unencodable value the export
// degrades to "{}" instead of propagating an error into the preview.
func ConfigJSON(cfg *ScreenConfig) string {
	if cfg == nil {
		return "{}"
	}
	encoded, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(encoded)
}
