package util

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"long", "abcdefgh", 5, "abcd…"},
		{"korean", "AI 모델 학습 결과", 6, "AI 모델…"},
		{"one", "abc", 1, "a"},
		{"zero", "abc", 0, ""},
		{"negative", "abc", -1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.n); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestNullStringRoundTrip(t *testing.T) {
	if got := NullStringToPtr(NullStringPtr(nil)); got != nil {
		t.Errorf("nil round trip = %v", *got)
	}
	s := "value"
	got := NullStringToPtr(NullStringPtr(&s))
	if got == nil || *got != s {
		t.Errorf("round trip = %v", got)
	}
	if ns := NullStringPtr(&s); ns != (sql.NullString{String: s, Valid: true}) {
		t.Errorf("NullStringPtr = %+v", ns)
	}
}

func TestGetXDGDataDir_RespectsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := GetXDGDataDir()
	if err != nil {
		t.Fatalf("GetXDGDataDir: %v", err)
	}
	if want := filepath.Join(dir, "runlog"); got != want {
		t.Errorf("GetXDGDataDir = %q, want %q", got, want)
	}
}
