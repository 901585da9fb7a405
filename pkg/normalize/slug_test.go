package normalize

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "basic title",
			input: "Go Conference",
			want:  "go-conference",
		},
		{
			name:  "punctuation and year",
			input: "Hello, World!!! 2024",
			want:  "hello-world-2024",
		},
		{
			name:  "leading and trailing spaces",
			input: "  Cloud Summit  ",
			want:  "cloud-summit",
		},
		{
			name:  "whitespace runs collapse to one hyphen",
			input: "Data\t\tEngineering   Meetup",
			want:  "data-engineering-meetup",
		},
		{
			name:  "existing hyphens collapse",
			input: "AI --- Workshop",
			want:  "ai-workshop",
		},
		{
			name:  "hyphens trimmed at edges",
			input: "-Open Mic-",
			want:  "open-mic",
		},
		{
			name:  "only disallowed characters",
			input: "!!!???",
			want:  "",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slug(tt.input)
			if got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlug_Idempotent(t *testing.T) {
	titles := []string{
		"Hello, World!!! 2024",
		"  Cloud Summit  ",
		"Go Conference",
		"A -- Strange --- Title",
	}

	for _, title := range titles {
		once := Slug(title)
		twice := Slug(once)
		if once != twice {
			t.Errorf("Slug is not idempotent for %q: first %q, second %q", title, once, twice)
		}
	}
}
