package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testChart() *Chart {
	return &Chart{
		Meta: Metadata{
			Title:  "Test Song",
			Artist: "Tester",
			MP3:    "test.mp3",
			BPM:    120.0,
			GapMS:  1000,
			EndMS:  30000,
		},
		Notes: []Note{
			{Kind: Sung, Beat: 0, Duration: 4, Pitch: 9, Text: "hello"},
			{Kind: Pause, Beat: 20},
			{Kind: Emphasized, Beat: 24, Duration: 6, Pitch: 26, Text: "world"},
		},
	}
}

func TestSerialize(t *testing.T) {
	want := `#TITLE:Test Song
#ARTIST:Tester
#MP3:test.mp3
#BPM:120.0
#GAP:1000
#END:30000

: 0 4 9 hello
- 20
* 24 6 26 world
E
`

	var b strings.Builder
	if err := (Serializer{}).Serialize(&b, testChart()); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if b.String() != want {
		t.Errorf("serialized chart mismatch:\ngot:\n%s\nwant:\n%s", b.String(), want)
	}
}

func TestSerializeIdempotent(t *testing.T) {
	c := testChart()

	var first, second strings.Builder
	if err := (Serializer{}).Serialize(&first, c); err != nil {
		t.Fatalf("first Serialize: %v", err)
	}
	if err := (Serializer{}).Serialize(&second, c); err != nil {
		t.Fatalf("second Serialize: %v", err)
	}
	if first.String() != second.String() {
		t.Error("serializing the same chart twice produced different bytes")
	}
}

func TestSerializeEmptyText(t *testing.T) {
	c := &Chart{
		Meta: Metadata{Title: "T", Artist: "A", MP3: "t.mp3", BPM: 120, GapMS: 0},
		Notes: []Note{
			{Kind: Sung, Beat: 0, Duration: 4, Pitch: 9},
		},
	}

	t.Run("PlaceholderDefault", func(t *testing.T) {
		var b strings.Builder
		if err := (Serializer{}).Serialize(&b, c); err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		if !strings.Contains(b.String(), ": 0 4 9 ~\n") {
			t.Errorf("textless note should serialize with placeholder, got:\n%s", b.String())
		}
	})

	t.Run("DropEmpty", func(t *testing.T) {
		var b strings.Builder
		if err := (Serializer{EmptyText: DropEmpty}).Serialize(&b, c); err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		if strings.Contains(b.String(), ": 0") {
			t.Errorf("textless note should be dropped, got:\n%s", b.String())
		}
	})
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Test Song - Tester.txt")

	c := testChart()
	if err := (Serializer{}).WriteFile(path, c); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	if parsed.Meta != c.Meta {
		t.Errorf("metadata mismatch: got %+v, want %+v", parsed.Meta, c.Meta)
	}
	if len(parsed.Notes) != len(c.Notes) {
		t.Fatalf("note count = %d, want %d", len(parsed.Notes), len(c.Notes))
	}
	for i := range c.Notes {
		if parsed.Notes[i] != c.Notes[i] {
			t.Errorf("note %d: got %+v, want %+v", i, parsed.Notes[i], c.Notes[i])
		}
	}

	// Re-serializing the parsed chart reproduces the original file exactly
	var b strings.Builder
	if err := (Serializer{}).Serialize(&b, parsed); err != nil {
		t.Fatalf("re-Serialize: %v", err)
	}
	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	if b.String() != string(original) {
		t.Error("round trip changed the chart bytes")
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the chart file in %s, found %d entries", dir, len(entries))
	}
}

func TestOutputName(t *testing.T) {
	name := OutputName(Metadata{Title: "Test Song", Artist: "Tester"})
	if name != "Test Song - Tester.txt" {
		t.Errorf("OutputName = %q", name)
	}
}
