package service

import (
	"errors"
	"net/url"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestBuildTaggedURLUnchangedWithoutUTM(t *testing.T) {
	tests := []string{
		"https://example.com",
		"https://example.com/page",
		"https://example.com/page?ref=abc",
	}
	for _, dest := range tests {
		got, err := BuildTaggedURL(dest, UTMFields{})
		if err != nil {
			t.Fatalf("BuildTaggedURL(%q) unexpected error: %v", dest, err)
		}
		if got != dest {
			t.Errorf("BuildTaggedURL(%q) = %q, want unchanged", dest, got)
		}
	}
}

func TestBuildTaggedURLSetsParams(t *testing.T) {
	got, err := BuildTaggedURL("https://example.com/landing?ref=keep&utm_source=old", UTMFields{
		Source:   strPtr("newsletter"),
		Campaign: strPtr("spring"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	q := u.Query()
	if q.Get("ref") != "keep" {
		t.Errorf("non-utm param lost: %q", got)
	}
	if q.Get("utm_source") != "newsletter" {
		t.Errorf("utm_source not overwritten: %q", got)
	}
	if q.Get("utm_campaign") != "spring" {
		t.Errorf("utm_campaign missing: %q", got)
	}
	if q.Has("utm_medium") || q.Has("utm_term") || q.Has("utm_content") {
		t.Errorf("nil utm fields must not appear: %q", got)
	}
}

func TestBuildTaggedURLDeterministic(t *testing.T) {
	utm := UTMFields{
		Source:  strPtr("s"),
		Medium:  strPtr("m"),
		Content: strPtr("c"),
	}
	first, err := BuildTaggedURL("https://example.com/p?x=1", utm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BuildTaggedURL("https://example.com/p?x=1", utm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("same inputs produced %q and %q", first, second)
	}
}

func TestBuildTaggedURLMalformed(t *testing.T) {
	tests := []string{
		"/relative/path",
		"example.com/no-scheme",
		"://bad",
	}
	for _, dest := range tests {
		if _, err := BuildTaggedURL(dest, UTMFields{}); !errors.Is(err, ErrMalformedURL) {
			t.Errorf("BuildTaggedURL(%q) error = %v, want ErrMalformedURL", dest, err)
		}
	}
}
