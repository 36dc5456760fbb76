package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	pkgerrors "github.com/cperrin88/jsonfetch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visit struct {
	name  string
	first bool
}

func recorder(visits *[]visit) Visitor {
	return func(_ context.Context, d Descriptor, first bool) error {
		*visits = append(*visits, visit{name: d.Name, first: first})
		return nil
	}
}

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(`[{"url":"u1","name":"a","extension":"bed"}, [], 3]`))
	require.NoError(t, err)
	assert.Len(t, m, 3)

	_, err = Parse(strings.NewReader(`{"url":"u1"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.ErrMalformedManifest)

	_, err = Parse(strings.NewReader(`[{"url":`))
	assert.ErrorIs(t, err, pkgerrors.ErrMalformedManifest)
}

func TestParse_RejectsNonArrayDocuments(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "null", input: `null`},
		{name: "null with whitespace", input: " null\n"},
		{name: "trailing object", input: `[] {"x":1}`},
		{name: "second array", input: `[{"url":"u1","name":"a","extension":"bed"}] []`},
		{name: "string", input: `"datasets"`},
		{name: "empty input", input: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(strings.NewReader(tt.input))
			require.ErrorIs(t, err, pkgerrors.ErrMalformedManifest)
			assert.Nil(t, m)
		})
	}

	m, err := Parse(strings.NewReader("[]\n"))
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
	}{
		{raw: `{"url":"x"}`, kind: KindDataset},
		{raw: `  [ {} ]`, kind: KindCollection},
		{raw: `"text"`, kind: KindOther},
		{raw: `12`, kind: KindOther},
		{raw: `null`, kind: KindOther},
		{raw: `true`, kind: KindOther},
		{raw: ``, kind: KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.kind, Classify(json.RawMessage(tt.raw)))
		})
	}
}

func TestWalk_FirstDatasetOnly(t *testing.T) {
	m, err := Parse(strings.NewReader(`[
		{"url":"u1","name":"one","extension":"bed"},
		{"url":"u2","name":"two","extension":"bed"},
		{"url":"u3","name":"three","extension":"bed"}
	]`))
	require.NoError(t, err)

	var visits []visit
	state, err := Walk(context.Background(), m, recorder(&visits))
	require.NoError(t, err)

	assert.Equal(t, []visit{{"one", true}, {"two", false}, {"three", false}}, visits)
	assert.True(t, state.FirstSeen)
	assert.Equal(t, 3, state.Datasets)
}

func TestWalk_NestedCollectionCanBeFirst(t *testing.T) {
	m, err := Parse(strings.NewReader(`[
		"ignored",
		[{"url":"u1","name":"inner-a","extension":"wig"}, {"url":"u2","name":"inner-b","extension":"wig"}],
		null,
		{"url":"u3","name":"outer","extension":"bed"}
	]`))
	require.NoError(t, err)

	var visits []visit
	state, err := Walk(context.Background(), m, recorder(&visits))
	require.NoError(t, err)

	assert.Equal(t, []visit{{"inner-a", true}, {"inner-b", false}, {"outer", false}}, visits)
	assert.Equal(t, 2, state.Skipped)
	assert.Equal(t, 3, state.Datasets)
}

func TestWalk_Empty(t *testing.T) {
	var visits []visit
	state, err := Walk(context.Background(), Manifest{}, recorder(&visits))
	require.NoError(t, err)
	assert.Empty(t, visits)
	assert.False(t, state.FirstSeen)
}

func TestWalk_MalformedDescriptors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		visited  int
		contains string
	}{
		{
			name:     "missing url",
			manifest: `[{"url":"u1","name":"ok","extension":"bed"}, {"name":"x","extension":"bed"}]`,
			visited:  1,
			contains: "entry 1: missing url",
		},
		{
			name:     "missing extension",
			manifest: `[{"url":"u1","name":"x"}]`,
			contains: "missing extension",
		},
		{
			name:     "wrong field type",
			manifest: `[{"url":5,"name":"x","extension":"bed"}]`,
			contains: "entry 0",
		},
		{
			name:     "doubly nested collection",
			manifest: `[[[{"url":"u1","name":"x","extension":"bed"}]]]`,
			contains: "entry 0[0]: collection members must be objects",
		},
		{
			name:     "extra data without path",
			manifest: `[{"url":"u1","name":"x","extension":"bed","extra_data":[{"url":"e1"}]}]`,
			contains: "extra_data item 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(strings.NewReader(tt.manifest))
			require.NoError(t, err)

			var visits []visit
			_, err = Walk(context.Background(), m, recorder(&visits))
			require.Error(t, err)
			assert.ErrorIs(t, err, pkgerrors.ErrMalformedDescriptor)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Len(t, visits, tt.visited)
		})
	}
}

func TestWalk_VisitorErrorStopsAndKeepsFlag(t *testing.T) {
	m, err := Parse(strings.NewReader(`[
		{"url":"u1","name":"one","extension":"bed"},
		{"url":"u2","name":"two","extension":"bed"},
		{"url":"u3","name":"three","extension":"bed"}
	]`))
	require.NoError(t, err)

	boom := errors.New("connection refused")
	calls := 0
	state, err := Walk(context.Background(), m, func(_ context.Context, d Descriptor, _ bool) error {
		calls++
		if d.Name == "two" {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `dataset "two" (entry 1)`)
	assert.Equal(t, 2, calls)
	assert.True(t, state.FirstSeen)
	assert.Equal(t, 1, state.Datasets)
}

func TestWalk_ContextCanceled(t *testing.T) {
	m, err := Parse(strings.NewReader(`[{"url":"u1","name":"one","extension":"bed"}]`))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var visits []visit
	_, err = Walk(ctx, m, recorder(&visits))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, visits)
}

func TestDescriptor_Metadata(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		object   string
		dbKey    string
		hasDBKey bool
	}{
		{name: "absent", raw: `{}`, object: `{}`},
		{name: "null", raw: `{"metadata":null}`, object: `{}`},
		{name: "without db_key", raw: `{"metadata":{"cell":"K562"}}`, object: `{"cell":"K562"}`},
		{name: "with db_key", raw: `{"metadata":{"db_key":"hg19"}}`, object: `{"db_key":"hg19"}`, dbKey: "hg19", hasDBKey: true},
		{name: "empty db_key treated as missing", raw: `{"metadata":{"db_key":""}}`, object: `{"db_key":""}`},
		{name: "non-string db_key", raw: `{"metadata":{"db_key":19}}`, object: `{"db_key":19}`},
		{name: "metadata not an object", raw: `{"metadata":"hg19"}`, object: `"hg19"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Descriptor
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &d))
			assert.JSONEq(t, tt.object, string(d.MetadataObject()))

			key, ok := d.DBKey()
			assert.Equal(t, tt.hasDBKey, ok)
			assert.Equal(t, tt.dbKey, key)
		})
	}
}

func TestDescriptor_HasExtraData(t *testing.T) {
	assert.False(t, Descriptor{}.HasExtraData())
	assert.False(t, Descriptor{ExtraData: []ExtraData{}}.HasExtraData())
	assert.True(t, Descriptor{ExtraData: []ExtraData{{URL: "u", Path: "p"}}}.HasExtraData())
}
