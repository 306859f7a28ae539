package calendar

import (
	"strings"
	"testing"

	"wholesomemarket.io/booking/models"
)

func TestStartHour(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"11:00 AM", 11},
		{"3:00 PM", 15},
		{"12:00 PM", 12},
		{"12:00 AM", 0},
		{"8:00 PM", 20},
		{"1:00 pm", 13},
		{"", 9},
		{"noonish", 9},
		{"25:00 PM", 9},
		{"11:00", 9},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := StartHour(tt.label); got != tt.want {
				t.Errorf("StartHour(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestRenderEventWindows(t *testing.T) {
	tests := []struct {
		name      string
		slot      models.DemoSlot
		wantStart string
		wantEnd   string
	}{
		{
			"morning slot",
			models.DemoSlot{Date: "2025-03-07", Time: "11:00 AM", Location: "Downtown"},
			"DTSTART:20250307T110000",
			"DTEND:20250307T140000",
		},
		{
			"afternoon slot",
			models.DemoSlot{Date: "2025-03-08", Time: "3:00 PM", Location: "Midtown"},
			"DTSTART:20250308T150000",
			"DTEND:20250308T180000",
		},
		{
			"late slot capped at end of day",
			models.DemoSlot{Date: "2025-03-09", Time: "10:00 PM", Location: "Uptown"},
			"DTSTART:20250309T220000",
			"DTEND:20250309T235900",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Render([]models.DemoSlot{tt.slot}, "Acme Foods", "Hot Sauce")
			if !strings.Contains(doc, tt.wantStart) {
				t.Errorf("document missing %q", tt.wantStart)
			}
			if !strings.Contains(doc, tt.wantEnd) {
				t.Errorf("document missing %q", tt.wantEnd)
			}
		})
	}
}

func TestRenderStructure(t *testing.T) {
	slots := []models.DemoSlot{
		{Date: "2025-03-07", Time: "11:00 AM", Location: "Downtown"},
		{Date: "2025-03-08", Time: "3:00 PM", Location: "Midtown"},
	}

	doc := Render(slots, "Acme Foods", "Hot Sauce")

	if got := strings.Count(doc, "BEGIN:VEVENT"); got != len(slots) {
		t.Errorf("event count = %d, want %d", got, len(slots))
	}
	if !strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n") {
		t.Error("document must open with BEGIN:VCALENDAR and CRLF line endings")
	}
	if !strings.HasSuffix(doc, "END:VCALENDAR\r\n") {
		t.Error("document must close with END:VCALENDAR")
	}
	if strings.Contains(strings.ReplaceAll(doc, "\r\n", ""), "\n") {
		t.Error("document contains a bare LF outside CRLF line endings")
	}

	// Event identifiers must distinguish slots within one document.
	uids := make(map[string]bool)
	for _, line := range strings.Split(doc, "\r\n") {
		if strings.HasPrefix(line, "UID:") {
			if uids[line] {
				t.Errorf("duplicate %s", line)
			}
			uids[line] = true
		}
	}
	if len(uids) != len(slots) {
		t.Errorf("got %d UIDs, want %d", len(uids), len(slots))
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a,b", `a\,b`},
		{"a;b", `a\;b`},
		{"line1\nline2", `line1\nline2`},
		{"line1\r\nline2", `line1\nline2`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
