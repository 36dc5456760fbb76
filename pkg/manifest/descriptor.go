package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Descriptor describes one remote dataset.
type Descriptor struct {
	URL       string          `json:"url"`
	Name      string          `json:"name"`
	Extension string          `json:"extension"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	ExtraData []ExtraData     `json:"extra_data,omitempty"`
}

// ExtraData is an auxiliary file stored next to a dataset.
// Path is relative to the dataset's extra-files directory.
type ExtraData struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

var emptyObject = json.RawMessage(`{}`)

// MetadataObject returns the descriptor's metadata verbatim, or {} when absent.
func (d Descriptor) MetadataObject() json.RawMessage {
	if len(d.Metadata) == 0 || bytes.Equal(d.Metadata, []byte("null")) {
		return emptyObject
	}
	return d.Metadata
}

// HasExtraData reports whether auxiliary files were declared.
func (d Descriptor) HasExtraData() bool {
	return len(d.ExtraData) > 0
}

// DBKey looks up metadata.db_key. ok is false when metadata is absent, is not
// an object, or has no non-empty string db_key. An empty db_key would leave the
// last field of a member filename blank, so it counts as missing.
func (d Descriptor) DBKey() (key string, ok bool) {
	var meta struct {
		DBKey any `json:"db_key"`
	}
	if err := json.Unmarshal(d.MetadataObject(), &meta); err != nil {
		return "", false
	}
	key, ok = meta.DBKey.(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func (d Descriptor) validate() string {
	switch {
	case d.URL == "":
		return "missing url"
	case d.Name == "":
		return "missing name"
	case d.Extension == "":
		return "missing extension"
	}
	for i, extra := range d.ExtraData {
		if extra.URL == "" || extra.Path == "" {
			return fmt.Sprintf("extra_data item %d needs url and path", i)
		}
	}
	return ""
}
