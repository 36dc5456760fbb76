// Package jobparams loads the parameter file the job runner hands to the tool.
package jobparams

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/cperrin88/jsonfetch/pkg/errors"
)

// Params is the subset of the job parameter file this tool consumes.
type Params struct {
	ParamDict  ParamDict    `json:"param_dict"`
	OutputData []OutputData `json:"output_data"`
	JobConfig  JobConfig    `json:"job_config"`
}

// ParamDict carries the tool's form parameters.
type ParamDict struct {
	URL     string `json:"URL"`
	Output1 string `json:"output1"`
}

// OutputData describes one output dataset the runner pre-allocated.
type OutputData struct {
	ExtraFilesPath string `json:"extra_files_path"`
	FileName       string `json:"file_name"`
	Ext            string `json:"ext"`
	OutDataName    string `json:"out_data_name"`
	HDAID          ID     `json:"hda_id"`
	DatasetID      ID     `json:"dataset_id"`
}

// JobConfig carries runner-level settings.
type JobConfig struct {
	MetadataFile string `json:"TOOL_PROVIDED_JOB_METADATA_FILE"`
}

// ID is an identifier assigned by the runner. It is kept as the raw JSON
// scalar so it round-trips into the metadata file unchanged.
type ID struct {
	raw json.RawMessage
}

// NewID wraps a literal JSON scalar, e.g. NewID("42") or NewID(`"abc"`).
func NewID(raw string) ID {
	return ID{raw: json.RawMessage(raw)}
}

// IsZero reports whether the ID was absent or null.
func (id ID) IsZero() bool {
	return len(id.raw) == 0 || bytes.Equal(id.raw, []byte("null"))
}

// String renders the ID for use inside filenames; JSON strings are unquoted.
func (id ID) String() string {
	var s string
	if err := json.Unmarshal(id.raw, &s); err == nil {
		return s
	}
	return string(id.raw)
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return id.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	id.raw = append(id.raw[:0], data...)
	return nil
}

// Output returns the first pre-allocated output, which every fetched dataset is attached to.
func (p *Params) Output() OutputData {
	return p.OutputData[0]
}

// Load reads and validates the job parameter file at path.
func Load(path string) (*Params, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open job parameter file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadFromReader(file)
}

// LoadFromReader decodes and validates job parameters from r.
func LoadFromReader(r io.Reader) (*Params, error) {
	var params Params
	if err := json.NewDecoder(r).Decode(&params); err != nil {
		return nil, errors.Wrap(errors.ErrJobParamsParse, err.Error())
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &params, nil
}

// Validate checks that every value the run depends on is present.
func (p *Params) Validate() error {
	if p.ParamDict.URL == "" {
		return errors.ErrMissingJobParamWithKey("param_dict.URL")
	}
	if p.ParamDict.Output1 == "" {
		return errors.ErrMissingJobParamWithKey("param_dict.output1")
	}
	if len(p.OutputData) == 0 {
		return errors.ErrMissingJobParamWithKey("output_data")
	}
	if p.OutputData[0].HDAID.IsZero() {
		return errors.ErrMissingJobParamWithKey("output_data[0].hda_id")
	}
	if p.OutputData[0].DatasetID.IsZero() {
		return errors.ErrMissingJobParamWithKey("output_data[0].dataset_id")
	}
	if p.JobConfig.MetadataFile == "" {
		return errors.ErrMissingJobParamWithKey("job_config.TOOL_PROVIDED_JOB_METADATA_FILE")
	}
	return nil
}
