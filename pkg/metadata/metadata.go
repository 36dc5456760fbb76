// Package metadata writes the line-delimited JSON file through which the job
// runner learns about every dataset the tool produced.
package metadata

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/cperrin88/jsonfetch/pkg/errors"
	"github.com/cperrin88/jsonfetch/pkg/fsutil"
	"github.com/cperrin88/jsonfetch/pkg/jobparams"
)

// Dataset types understood by the job runner.
const (
	TypeNewPrimaryDataset = "new_primary_dataset"
	TypeDataset           = "dataset"
)

// ExtraFilesSuffix is appended, without separator, to a dataset filename to
// name its extra-files directory.
const ExtraFilesSuffix = "files"

// Record is one line of the metadata file. Field order is the wire order.
type Record struct {
	Type          string          `json:"type"`
	Ext           string          `json:"ext"`
	Filename      string          `json:"filename"`
	Name          string          `json:"name"`
	Metadata      json.RawMessage `json:"metadata"`
	ExtraFiles    string          `json:"extra_files,omitempty"`
	BaseDatasetID *jobparams.ID   `json:"base_dataset_id,omitempty"`
	DatasetID     *jobparams.ID   `json:"dataset_id,omitempty"`
}

// NewRecord builds the record for a dataset written to filename. The first
// dataset of a run is announced as a new primary dataset linked through
// base_dataset_id; later ones as plain datasets linked through dataset_id.
func NewRecord(first bool, ext, filename, name string, meta json.RawMessage, hasExtraFiles bool, datasetID jobparams.ID) Record {
	rec := Record{
		Type:     TypeDataset,
		Ext:      ext,
		Filename: filename,
		Name:     name,
		Metadata: meta,
	}
	if len(rec.Metadata) == 0 {
		rec.Metadata = json.RawMessage(`{}`)
	}
	if hasExtraFiles {
		rec.ExtraFiles = filename + ExtraFilesSuffix
	}
	id := datasetID
	if first {
		rec.Type = TypeNewPrimaryDataset
		rec.BaseDatasetID = &id
	} else {
		rec.DatasetID = &id
	}
	return rec
}

// Writer appends records to an underlying stream, one compact JSON object per line.
type Writer struct {
	w      io.Writer
	closer io.Closer
	count  int
}

// NewWriter wraps w. Close closes w if it implements io.Closer.
func NewWriter(w io.Writer) *Writer {
	mw := &Writer{w: w}
	if c, ok := w.(io.Closer); ok {
		mw.closer = c
	}
	return mw
}

// Create truncates or creates the metadata file at path.
func Create(path string) (*Writer, error) {
	if err := fsutil.EnsureFileDir(path); err != nil {
		return nil, errors.Wrapf(err, "could not create directory for metadata file %s", path)
	}
	file, err := fsutil.CreateFilePerm(path, fsutil.FileModeDefault)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create metadata file %s", path)
	}
	return NewWriter(file), nil
}

// Write appends rec as a single line.
func (mw *Writer) Write(rec Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return errors.Wrap(err, "could not encode metadata record")
	}
	if _, err := mw.w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "could not write metadata record")
	}
	mw.count++
	return nil
}

// Count returns the number of records written.
func (mw *Writer) Count() int {
	return mw.count
}

// Close closes the underlying file, if any.
func (mw *Writer) Close() error {
	if mw.closer == nil {
		return nil
	}
	return mw.closer.Close()
}
