// Package manifest decodes the data source's JSON manifest and walks it in
// document order, classifying every element as a dataset descriptor, a nested
// collection of descriptors, or something to ignore.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cperrin88/jsonfetch/internal/logger"
	"github.com/cperrin88/jsonfetch/pkg/errors"
)

// Manifest is the top-level JSON array returned by the data source.
type Manifest []json.RawMessage

// Kind classifies a manifest element.
type Kind int

const (
	// KindOther is any scalar or null; it is skipped.
	KindOther Kind = iota
	// KindDataset is a JSON object describing one dataset.
	KindDataset
	// KindCollection is a JSON array of dataset objects, flattened one level.
	KindCollection
)

// Visitor is called once per dataset in document order. first is true only for
// the very first dataset of the whole manifest.
type Visitor func(ctx context.Context, d Descriptor, first bool) error

// State is the accumulator threaded through Walk.
type State struct {
	// FirstSeen flips to true once the first dataset has been processed and never resets.
	FirstSeen bool
	// Datasets counts processed datasets.
	Datasets int
	// Skipped counts top-level elements that were neither objects nor arrays.
	Skipped int
}

// Parse decodes a manifest. The top level must be a JSON array.
func Parse(r io.Reader) (Manifest, error) {
	var m Manifest
	dec := json.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrMalformedManifest, err.Error())
	}
	if m == nil {
		return nil, errors.Wrap(errors.ErrMalformedManifest, "top level is null")
	}
	if dec.More() {
		return nil, errors.Wrap(errors.ErrMalformedManifest, "unexpected data after top-level array")
	}
	return m, nil
}

// Classify reports the kind of a raw manifest element.
func Classify(raw json.RawMessage) Kind {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return KindOther
	}
	switch trimmed[0] {
	case '{':
		return KindDataset
	case '[':
		return KindCollection
	default:
		return KindOther
	}
}

// Walk folds visit over every dataset of m in document order. Top-level
// arrays are flattened one level; their elements must be objects. The returned
// State reflects everything processed before an error, if any.
func Walk(ctx context.Context, m Manifest, visit Visitor) (State, error) {
	state := State{}
	for i, raw := range m {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		position := fmt.Sprintf("entry %d", i)
		var err error
		switch Classify(raw) {
		case KindDataset:
			state, err = step(ctx, state, raw, position, visit)
		case KindCollection:
			state, err = walkCollection(ctx, state, raw, position, visit)
		default:
			state.Skipped++
			logger.Debug("Skipping manifest element", logger.Fields{"position": position, "value": string(raw)})
		}
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

func walkCollection(ctx context.Context, state State, raw json.RawMessage, position string, visit Visitor) (State, error) {
	var members []json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return state, errors.ErrMalformedDescriptorWithDetails(position, err.Error())
	}
	for j, member := range members {
		if err := ctx.Err(); err != nil {
			return state, err
		}
		memberPosition := fmt.Sprintf("%s[%d]", position, j)
		if Classify(member) != KindDataset {
			return state, errors.ErrMalformedDescriptorWithDetails(memberPosition, "collection members must be objects")
		}
		var err error
		state, err = step(ctx, state, member, memberPosition, visit)
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

// step decodes one descriptor, visits it and returns the advanced state.
func step(ctx context.Context, state State, raw json.RawMessage, position string, visit Visitor) (State, error) {
	d, err := decodeDescriptor(raw, position)
	if err != nil {
		return state, err
	}
	if err := visit(ctx, d, !state.FirstSeen); err != nil {
		return state, errors.Wrapf(err, "dataset %q (%s)", d.Name, position)
	}
	state.FirstSeen = true
	state.Datasets++
	return state, nil
}

func decodeDescriptor(raw json.RawMessage, position string) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		return Descriptor{}, errors.ErrMalformedDescriptorWithDetails(position, err.Error())
	}
	if reason := d.validate(); reason != "" {
		return Descriptor{}, errors.ErrMalformedDescriptorWithDetails(position, reason)
	}
	return d, nil
}
