package document

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

const clientTOML = `
combinator = "OR"
include = ["client", "user"]

[[filter]]
path = "client.id"
value = 16512

[[filter]]
path = "client.name"
operator = "like"
value = "Jag"

[prior]
[[prior.filter]]
path = "user.number"
operator = "GE"
value = "30000"

[[prior.filter]]
path = "user.name"
operator = "LIKE"
value = "Emil"

[[sort]]
path = "client.name"
direction = "desc"
`

const clientJSON = `{
  "combinator": "OR",
  "include": ["client", "user"],
  "filter": [
    {"path": "client.id", "value": 16512},
    {"path": "client.name", "operator": "LIKE", "value": "Jag"}
  ],
  "prior": {
    "filter": [
      {"path": "user.number", "operator": "GE", "value": "30000"},
      {"path": "user.name", "operator": "LIKE", "value": "Emil"}
    ]
  },
  "sort": [{"path": "client.name", "direction": "DESC"}]
}`

const expectedQuery = `include=client,user&filter={"OR": [{"client": {"EQ": {"id": "16512"}}}, {"client": {"LIKE": {"name": "Jag%"}}}, {"AND": [{"user": {"GE": {"number": "30000"}}}, {"user": {"LIKE": {"name": "Emil%"}}}]}]}&sort=-client.name`

func queryOf(t *testing.T, doc *Document) string {
	t.Helper()
	q, err := doc.Query(nil)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	s, err := url.QueryUnescape(q.String())
	if err != nil {
		t.Fatalf("QueryUnescape failed: %v", err)
	}
	return s
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"toml", clientTOML, FormatTOML},
		{"json", clientJSON, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got := queryOf(t, doc); got != expectedQuery {
				t.Errorf("expected '%s', got '%s'", expectedQuery, got)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	doc, err := Decode([]byte(clientTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	for _, format := range []Format{FormatTOML, FormatJSON, FormatMsgpack} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(doc, format)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			back, err := Decode(data, format)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got := queryOf(t, back); got != expectedQuery {
				t.Errorf("expected '%s', got '%s'", expectedQuery, got)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clients.toml")
	if err := os.WriteFile(path, []byte(clientTOML), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Filters) != 2 || doc.Prior == nil {
		t.Errorf("unexpected document: %+v", doc)
	}

	if _, err := Load(filepath.Join(dir, "clients.yaml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildBasic(t *testing.T) {
	doc := &Document{
		Mode: "basic",
		Filters: []SpecDef{
			{Path: "user.name", Operator: "LIKE", Value: "Emil"},
			{Path: "user.id", Value: []any{int64(1), nil, int64(2)}},
		},
	}

	got := queryOf(t, doc)
	expected := "filter[user.name][LIKE]=Emil%&filter[user.id][EQ]=1,2"
	if got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}

	doc.Prior = &Document{}
	if _, err := doc.Build(nil); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestBuildInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
	}{
		{"empty path", &Document{Filters: []SpecDef{{Path: "", Value: "x"}}}},
		{"empty segment", &Document{Filters: []SpecDef{{Path: "a..b", Value: "x"}}}},
		{"unknown operator", &Document{Filters: []SpecDef{{Path: "a", Operator: "CONTAINS", Value: "x"}}}},
		{"unknown combinator", &Document{Combinator: "XOR"}},
		{"unknown mode", &Document{Mode: "flat"}},
		{"invalid prior", &Document{Prior: &Document{Filters: []SpecDef{{Path: ".", Value: "x"}}}}},
		{"invalid sort", &Document{Sort: []SortDef{{Path: "a", Direction: "sideways"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.doc.Query(nil); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestEmptyPriorIsTransparent(t *testing.T) {
	doc := &Document{
		Filters: []SpecDef{{Path: "car.name", Operator: "LIKE", Value: "   "}},
		Prior: &Document{
			Filters: []SpecDef{{Path: "bike.name", Operator: "LIKE", Value: "Suz"}},
		},
	}

	nf, err := doc.Nested(nil)
	if err != nil {
		t.Fatalf("Nested failed: %v", err)
	}
	if got := nf.String(); got != `{"bike": {"LIKE": {"name": "Suz%"}}}` {
		t.Errorf("unexpected filter '%s'", got)
	}
}
