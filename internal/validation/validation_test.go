package validation

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"bare host watch url", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short url trailing slash", "https://youtu.be/dQw4w9WgXcQ/", "dQw4w9WgXcQ", false},
		{"wrong host", "https://vimeo.com/watch?v=dQw4w9WgXcQ", "", true},
		{"missing v param", "https://www.youtube.com/watch", "", true},
		{"wrong path", "https://www.youtube.com/playlist?list=abc", "", true},
		{"empty short path", "https://youtu.be/", "", true},
		{"not a url", "://nope", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractVideoID(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestIsValidVideoURL(t *testing.T) {
	if !IsValidVideoURL("https://www.youtube.com/watch?v=abc123") {
		t.Error("expected valid watch URL to pass")
	}
	if IsValidVideoURL("https://example.com/watch?v=abc123") {
		t.Error("expected unknown host to fail")
	}
}

func TestFallbackVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc123", "abc123"},
		{"https://youtu.be/xyz789", "xyz789"},
		{"https://example.com/videos/last", "last"},
		{"plainstring", "plainstring"},
	}

	for _, tt := range tests {
		if got := FallbackVideoID(tt.url); got != tt.want {
			t.Errorf("FallbackVideoID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
