package mcpservice

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestTextResource_Options(t *testing.T) {
	t.Parallel()
	r := TextResource("res://a.txt", "A")
	if r.Descriptor.Name != "res://a.txt" {
		t.Fatalf("name should default to the uri, got %q", r.Descriptor.Name)
	}
	r = TextResource("res://a.txt", "A", WithName("a"), WithDescription("first"), WithMimeType("text/plain"))
	if d := r.Descriptor; d.Name != "a" || d.Description != "first" || d.MIMEType != "text/plain" {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
}

func TestResourcesContainer_RejectsRelativeURI(t *testing.T) {
	t.Parallel()
	rc := NewResourcesContainer()
	if err := rc.UpsertResource(TextResource("a.txt", "A")); !errors.Is(err, ErrInvalidResourceURI) {
		t.Fatalf("expected ErrInvalidResourceURI, got %v", err)
	}
}

func TestResourcesContainer_ReadUpsertRemove(t *testing.T) {
	t.Parallel()
	rc := NewResourcesContainer(TextResource("res://a.txt", "A", WithMimeType("text/plain")))
	var reads atomic.Int32
	rc.OnRead(func(context.Context, string) { reads.Add(1) })

	cs := connect(t, NewServer(WithResourcesCapability(rc)))

	read := func(uri string) (*mcp.ReadResourceResult, error) {
		return cs.ReadResource(t.Context(), &mcp.ReadResourceParams{URI: uri})
	}

	res, err := read("res://a.txt")
	if err != nil {
		t.Fatalf("ReadResource: %v", err)
	}
	if c := res.Contents[0]; c.Text != "A" || c.MIMEType != "text/plain" || c.URI != "res://a.txt" {
		t.Fatalf("unexpected contents: %+v", c)
	}

	if err := rc.UpsertResource(TextResource("res://a.txt", "A2")); err != nil {
		t.Fatalf("UpsertResource: %v", err)
	}
	if err := rc.UpsertResource(TextResource("res://b.txt", "B")); err != nil {
		t.Fatalf("UpsertResource: %v", err)
	}
	if res, err := read("res://a.txt"); err != nil || res.Contents[0].Text != "A2" {
		t.Fatalf("expected replaced contents, got %v, %v", res, err)
	}
	if res, err := read("res://b.txt"); err != nil || res.Contents[0].Text != "B" {
		t.Fatalf("expected added resource, got %v, %v", res, err)
	}

	if !rc.Remove("res://a.txt") || rc.Remove("res://a.txt") {
		t.Fatalf("remove should succeed exactly once")
	}
	if _, err := read("res://a.txt"); err == nil {
		t.Fatalf("expected an error reading a removed resource")
	}
	if c, ok := rc.ReadContents("res://b.txt"); !ok || c.Text != "B" {
		t.Fatalf("index not maintained after removal: %+v, %v", c, ok)
	}
	if got := reads.Load(); got != 3 {
		t.Fatalf("OnRead called %d times, want 3", got)
	}
	if n := len(rc.Snapshot()); n != 1 {
		t.Fatalf("snapshot has %d resources, want 1", n)
	}
}
