package arcdata

import (
	"encoding/json"
	"fmt"
	"os"
)

// requiredKeys are the five top-level fields every document must carry.
// Checked in this order so error messages are stable.
var requiredKeys = []string{"arcs", "arc_list", "weapons", "explosives", "notes"}

// Parse decodes a dataset document. A document that is not valid JSON, is
// missing one of the required keys, or carries an unreadable quantity or
// verified marker is rejected outright: the site cannot render without
// data, so there is no partial recovery.
func Parse(data []byte) (*Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	for _, key := range requiredKeys {
		if _, ok := probe[key]; !ok {
			return nil, fmt.Errorf("document missing required key %q", key)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// Load reads and parses the dataset file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
