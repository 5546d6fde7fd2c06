package buildinfo

import "testing"

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	tests := []struct {
		version, commit, want string
	}{
		{"v1.2.0", "abc1234", "v1.2.0"},
		{"dev", "abc1234", "abc1234"},
		{"dev", "unknown", "dev"},
		{"", "", "dev"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := Short(); got != tt.want {
			t.Errorf("Short() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.2.0", "abc1234", "2026-01-02"
	if got := String(); got != "dash v1.2.0 (abc1234, 2026-01-02)" {
		t.Fatalf("String() = %q", got)
	}
}
