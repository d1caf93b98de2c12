package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/docs2md/internal/model"
)

// sampleSummary builds a summary with one failure for writer tests.
func sampleSummary() *model.CrawlSummary {
	return &model.CrawlSummary{
		StartURL:   "https://docs.example.com/",
		DocName:    "exampledocs",
		Discovered: 10,
		Processed:  10,
		Succeeded:  9,
		Failed:     1,
		Elapsed:    3200 * time.Millisecond,
		IndexPath:  "output/exampledocs/index.md",
		Failures: []model.PageFailure{
			{URL: "https://docs.example.com/broken", Message: "server returned error status: 500"},
		},
	}
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("summary fields", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		w := NewSimpleWriter(&buf)
		n, err := w.Write(sampleSummary())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
		}

		out := buf.String()
		for _, want := range []string{
			"CRAWL SUMMARY",
			"https://docs.example.com/",
			"exampledocs",
			"Succeeded:      9",
			"Failed:         1",
			"FAILED PAGES",
			"[x] https://docs.example.com/broken",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		// Error messages only appear in verbose mode.
		if strings.Contains(out, "500") {
			t.Errorf("failure message leaked into non-verbose output:\n%s", out)
		}
	})

	t.Run("verbose failure messages", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		w := NewSimpleWriter(&buf, WithVerbose(true))
		if _, err := w.Write(sampleSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "server returned error status: 500") {
			t.Errorf("verbose output missing failure message:\n%s", buf.String())
		}
	})

	t.Run("no failure section when clean", func(t *testing.T) {
		t.Parallel()

		summary := sampleSummary()
		summary.Failed = 0
		summary.Failures = nil

		var buf strings.Builder
		if _, err := NewSimpleWriter(&buf).Write(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "FAILED PAGES") {
			t.Errorf("failure section present for clean run:\n%s", buf.String())
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	w := NewMarkdownWriter(&buf)
	if _, err := w.Write(sampleSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Crawl Summary",
		"| Start URL |",
		"`https://docs.example.com/`",
		"## Failed Pages",
		"`https://docs.example.com/broken`",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output round-trips", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewJSONWriter(&buf).Write(sampleSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.CrawlSummary
		if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Succeeded != 9 || decoded.Failed != 1 {
			t.Errorf("unexpected counters: %+v", decoded)
		}
		if len(decoded.Failures) != 1 {
			t.Errorf("failures lost in serialization: %+v", decoded.Failures)
		}
	})

	t.Run("pretty printed", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(sampleSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"start_url\"") {
			t.Errorf("output not indented:\n%s", buf.String())
		}
	})
}

// errWriter fails after the first write to exercise MultiWriter's
// error propagation.
type errWriter struct{}

func (errWriter) Write(*model.CrawlSummary) (int, error) {
	return 0, errors.New("sink closed")
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all sinks", func(t *testing.T) {
		t.Parallel()

		var a, b strings.Builder
		mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))
		if _, err := mw.Write(sampleSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Len() == 0 || b.Len() == 0 {
			t.Error("one of the sinks received no output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var after strings.Builder
		mw := NewMultiWriter(errWriter{}, NewSimpleWriter(&after))
		if _, err := mw.Write(sampleSummary()); err == nil {
			t.Fatal("expected error")
		}
		if after.Len() != 0 {
			t.Error("writer after the failing one was still invoked")
		}
	})
}
