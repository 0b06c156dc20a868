package process

import (
	"reflect"
	"strings"
	"testing"

	applog "mailsweep/pkg/log"
)

func TestHTMLParser_Parse_Links(t *testing.T) {
	parser := NewHTMLParser(applog.NewNop())

	tests := []struct {
		name      string
		html      string
		wantLinks []string
	}{
		{
			name:      "AnchorsInDocumentOrder",
			html:      `<html><body><a href="/a">A</a><p><a href="https://example.com/b">B</a></p><a href="../c">C</a></body></html>`,
			wantLinks: []string{"/a", "https://example.com/b", "../c"},
		},
		{
			name:      "EmptyHrefSkipped",
			html:      `<a href="">empty</a><a href="/ok">ok</a>`,
			wantLinks: []string{"/ok"},
		},
		{
			name:      "AnchorWithoutHrefSkipped",
			html:      `<a name="top">anchor</a><a href="/only">only</a>`,
			wantLinks: []string{"/only"},
		},
		{
			name:      "MailtoAndJavascriptKeptRaw",
			html:      `<a href="mailto:x@example.com">mail</a><a href="javascript:void(0)">js</a>`,
			wantLinks: []string{"mailto:x@example.com", "javascript:void(0)"}, // Admissibility is link discovery's call
		},
		{
			name:      "NoLinks",
			html:      `<p>plain paragraph</p>`,
			wantLinks: nil,
		},
		{
			name:      "DuplicateHrefsKept",
			html:      `<a href="/x">1</a><a href="/x">2</a>`,
			wantLinks: []string{"/x", "/x"}, // Per-page dedup happens downstream
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.Parse(tt.html)
			if !reflect.DeepEqual(result.Links, tt.wantLinks) {
				t.Errorf("Parse links = %v, want %v", result.Links, tt.wantLinks)
			}
		})
	}
}

func TestHTMLParser_Parse_Text(t *testing.T) {
	parser := NewHTMLParser(applog.NewNop())

	t.Run("VisibleTextExtracted", func(t *testing.T) {
		result := parser.Parse(`<html><body><h1>Contact</h1><p>Reach us at info@example.com</p></body></html>`)
		if !strings.Contains(result.Text, "info@example.com") {
			t.Errorf("expected text to contain address, got %q", result.Text)
		}
		if !strings.Contains(result.Text, "Contact") {
			t.Errorf("expected text to contain heading, got %q", result.Text)
		}
	})

	t.Run("ScriptAndStyleExcluded", func(t *testing.T) {
		result := parser.Parse(`<html><body>
			<script>var hidden = "script@example.com";</script>
			<style>.x{content:"style@example.com"}</style>
			<p>visible@example.com</p>
		</body></html>`)
		if strings.Contains(result.Text, "script@example.com") {
			t.Error("script content leaked into text")
		}
		if strings.Contains(result.Text, "style@example.com") {
			t.Error("style content leaked into text")
		}
		if !strings.Contains(result.Text, "visible@example.com") {
			t.Errorf("visible text missing, got %q", result.Text)
		}
	})

	t.Run("MalformedMarkupBestEffort", func(t *testing.T) {
		// Unclosed tags; html.Parse repairs rather than fails.
		result := parser.Parse(`<p>first@example.com<div><a href="/next">next`)
		if !strings.Contains(result.Text, "first@example.com") {
			t.Errorf("best-effort extraction failed, got %q", result.Text)
		}
		if !reflect.DeepEqual(result.Links, []string{"/next"}) {
			t.Errorf("links = %v, want [/next]", result.Links)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		result := parser.Parse("")
		if strings.TrimSpace(result.Text) != "" || result.Links != nil {
			t.Errorf("expected zero result for empty input, got %+v", result)
		}
	})
}
