package serialize

import (
	"sync"
	"testing"

	"github.com/hugr-lab/crnk-filtering/internal/document"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMarshalUnmarshal(t *testing.T) {
	c := newTestCodec(t)

	doc := &document.Document{
		Combinator: "OR",
		Filters: []document.SpecDef{
			{Path: "client.id", Value: "16512"},
			{Path: "client.name", Operator: "LIKE", Value: "Jag"},
		},
		Prior: &document.Document{
			Filters: []document.SpecDef{{Path: "user.id", Value: []any{int64(1), int64(2)}}},
		},
		Include: []string{"client"},
	}

	data, err := c.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	back, err := c.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want, err := doc.Nested(nil)
	if err != nil {
		t.Fatalf("Nested failed: %v", err)
	}
	got, err := back.Nested(nil)
	if err != nil {
		t.Fatalf("Nested failed: %v", err)
	}
	if got.String() != want.String() {
		t.Errorf("expected '%s', got '%s'", want.String(), got.String())
	}
	if len(back.Include) != 1 || back.Include[0] != "client" {
		t.Errorf("unexpected include: %v", back.Include)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := newTestCodec(t)

	if _, err := c.Unmarshal(nil); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := c.Unmarshal([]byte("not zstd")); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestCodecConcurrentUse(t *testing.T) {
	c := newTestCodec(t)
	doc := &document.Document{Filters: []document.SpecDef{{Path: "id", Value: "1"}}}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := c.Marshal(doc)
			if err != nil {
				errs <- err
				return
			}
			if _, err := c.Unmarshal(data); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent use failed: %v", err)
	}
}
