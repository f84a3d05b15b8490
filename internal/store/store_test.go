package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/avolkov/chainsage/internal/model"
)

func doc(id, ctx string, ingested time.Time, sentences ...string) model.Document {
	return model.Document{
		DocumentID: id,
		Context:    ctx,
		Filename:   id + ".txt",
		DocType:    "text",
		IngestedAt: ingested,
		Sentences:  sentences,
	}
}

func TestMemoryStore_SentenceOrder(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	// Added out of ingestion order on purpose
	_ = s.AddDocument(doc("bbb", "ops", base.Add(time.Hour), "third sentence here.", "fourth sentence here."))
	_ = s.AddDocument(doc("aaa", "ops", base, "first sentence here.", "second sentence here."))
	_ = s.AddDocument(doc("ccc", "payments", base, "other context sentence."))

	got, err := s.Sentences(context.Background(), []string{"ops"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var texts []string
	for _, r := range got {
		texts = append(texts, r.Text)
	}
	want := []string{"first sentence here.", "second sentence here.", "third sentence here.", "fourth sentence here."}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("Unexpected sentence order:\ngot  %v\nwant %v", texts, want)
	}
}

func TestMemoryStore_Contexts(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	_ = s.AddDocument(doc("a", "payments", now, "x."))
	_ = s.AddDocument(doc("b", "ops", now, "y."))
	_ = s.AddDocument(doc("c", "ops", now, "z."))

	got, err := s.Contexts(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reflect.DeepEqual(got, []string{"ops", "payments"}) {
		t.Errorf("Expected sorted distinct contexts, got %v", got)
	}
}

func TestDiskStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := s.AddDocument(doc("abc123", "ops", base, "the service failed because of a config error.")); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}
	if err := s.AddDocument(doc("def456", "ops", base.Add(time.Minute), "engineers restarted the service.")); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	got, err := s.Sentences(context.Background(), []string{"ops"})
	if err != nil {
		t.Fatalf("Sentences failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(got))
	}
	if got[0].Text != "the service failed because of a config error." {
		t.Errorf("Unexpected first sentence: %q", got[0].Text)
	}

	contexts, err := s.Contexts(context.Background())
	if err != nil {
		t.Fatalf("Contexts failed: %v", err)
	}
	if !reflect.DeepEqual(contexts, []string{"ops"}) {
		t.Errorf("Unexpected contexts: %v", contexts)
	}
}

func TestDiskStore_EmptyDirIsEmptyStore(t *testing.T) {
	s := NewDiskStore(filepath.Join(t.TempDir(), "does-not-exist"))

	got, err := s.Sentences(context.Background(), []string{"ops"})
	if err != nil {
		t.Fatalf("Expected no error for missing dir, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no sentences, got %v", got)
	}
}

func TestDiskStore_ChainRecordsYAML(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStore(dir)

	chainsDir := filepath.Join(dir, "chains")
	if err := os.MkdirAll(chainsDir, 0755); err != nil {
		t.Fatal(err)
	}
	yamlData := `
- Root Cause: lock contention
  Fix: restart the replica
  Result: stalls gone
  Date: "2024-05-01"
- mitigation: add an index
`
	if err := os.WriteFile(filepath.Join(chainsDir, "ops.yaml"), []byte(yamlData), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := s.ChainRecords(context.Background(), []string{"ops", "payments"})
	if err != nil {
		t.Fatalf("ChainRecords failed: %v", err)
	}
	records := got["ops"]
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %v", got)
	}
	if records[0]["Fix"] != "restart the replica" {
		t.Errorf("Unexpected record: %v", records[0])
	}
	if _, ok := got["payments"]; ok {
		t.Errorf("Expected no records for payments, got %v", got["payments"])
	}
}

func TestDocumentID_Stable(t *testing.T) {
	a := DocumentID("ops", "runbook.txt", []byte("content"))
	b := DocumentID("ops", "runbook.txt", []byte("content"))
	c := DocumentID("ops", "runbook.txt", []byte("other"))

	if a != b {
		t.Errorf("Expected stable id, got %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("Expected different content to produce different id")
	}
	if len(a) != 12 {
		t.Errorf("Expected 12-char id, got %q", a)
	}
}
