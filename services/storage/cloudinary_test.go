package storage

import "testing"

func TestPublicIDFor(t *testing.T) {
	tests := map[string]string{
		"court a.png":        "court_a",
		"../../etc/passwd":   "passwd",
		"Centre-Court_1.JPG": "Centre-Court_1",
		"ø.png":              "",
		"":                   "",
	}
	for in, want := range tests {
		if got := publicIDFor(in); got != want {
			t.Errorf("publicIDFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewCloudinaryImageStoreNeedsCredentials(t *testing.T) {
	if _, err := NewCloudinaryImageStore("", "key", "secret", nil); err == nil {
		t.Error("expected an error without a cloud name")
	}
}
