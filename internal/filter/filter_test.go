package filter

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"Share  TWITTER", []string{"share", "twitter"}},
		{"\tbeta\npost ", []string{"beta", "post"}},
	}

	for _, tt := range tests {
		got := Tokenize(tt.in)
		if got == nil {
			t.Errorf("Tokenize(%q) returned nil, want empty slice", tt.in)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFindSequentialMatches(t *testing.T) {
	got := FindSequentialMatches("Share to Twitter right now", []string{"share", "TWITTER"})
	want := []Range{{Start: 0, End: 5}, {Start: 9, End: 16}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFindSequentialMatchesEmptyTokens(t *testing.T) {
	got := FindSequentialMatches("anything at all", Tokenize(""))
	if got == nil {
		t.Fatal("empty token list should match with an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no ranges, got %v", got)
	}
}

func TestFindSequentialMatchesTrimsTokens(t *testing.T) {
	got := FindSequentialMatches("Alpha Gamma", []string{" gamma", "  "})
	want := []Range{{Start: 6, End: 11}}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := FindSequentialMatches("anything", []string{" ", "\t"}); got == nil || len(got) != 0 {
		t.Errorf("blank tokens should match trivially, got %v", got)
	}
}

func TestFindSequentialMatchesMissingToken(t *testing.T) {
	if got := FindSequentialMatches("Share to Twitter", []string{"share", "mastodon"}); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestMatchesIsOrderSensitive(t *testing.T) {
	if Matches("alpha beta gamma", []string{"gamma", "alpha"}) {
		t.Error("reordered tokens should not match")
	}
	if !Matches("alpha beta gamma", []string{"alpha", "gamma"}) {
		t.Error("in-order tokens should match")
	}
}

func TestMatchesNonOverlapping(t *testing.T) {
	// The second "an" has to start after the first match ends.
	if Matches("banana", []string{"anan", "an"}) {
		t.Error("tokens must not overlap")
	}
	if !Matches("banana", []string{"an", "an"}) {
		t.Error("repeated token should match twice")
	}
}

func TestFindSequentialMatchesUnicodeOffsets(t *testing.T) {
	haystack := "Über Café notes"
	got := FindSequentialMatches(haystack, []string{"café"})
	if len(got) != 1 {
		t.Fatalf("expected one range, got %v", got)
	}
	if s := haystack[got[0].Start:got[0].End]; s != "Café" {
		t.Errorf("range covers %q, want %q", s, "Café")
	}
}

func TestMatchesAny(t *testing.T) {
	fields := []string{"Beta Post", "2024/alpha", "twitter:shared"}
	if !MatchesAny(fields, []string{"alpha"}) {
		t.Error("slug field should match")
	}
	if MatchesAny(fields, []string{"gamma"}) {
		t.Error("no field contains gamma")
	}
	if !MatchesAny(nil, []string{}) {
		t.Error("empty tokens match everything")
	}
}

func TestSegments(t *testing.T) {
	text := "Share to Twitter"
	got := Segments(text, FindSequentialMatches(text, []string{"to"}))
	want := []Segment{
		{Text: "Share "},
		{Text: "to", Matched: true},
		{Text: " Twitter"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSegmentsClipsToText(t *testing.T) {
	got := Segments("Share", []Range{{Start: 3, End: 10}})
	want := []Segment{{Text: "Sha"}, {Text: "re", Matched: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSegmentsNoRanges(t *testing.T) {
	if got := Segments("plain", nil); !reflect.DeepEqual(got, []Segment{{Text: "plain"}}) {
		t.Errorf("got %+v", got)
	}
	if got := Segments("", nil); got != nil {
		t.Errorf("expected nil for empty text, got %+v", got)
	}
}
