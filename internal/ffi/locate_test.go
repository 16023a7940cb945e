package ffi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMatchCandidate(t *testing.T) {
	exts := []string{".so", ".dylib"}
	tests := []struct {
		basename string
		want     bool
	}{
		{"libglfw.so", true},
		{"libglfw.so.3", true},
		{"libglfw.so.3.3", true},
		{"libglfw3.so", true},
		{"glfw.so", true},
		{"glfw.3.dylib", true},
		{"libglfw.dylib", true},
		{"libglfw.3.3.dylib", true},
		{"libglfw-wayland.so", false},
		{"libglfwextra.so", false},
		{"libglf.so", false},
		{"libglfw.txt", false},
		{"libglfw.so.backup", false},
		{"README", false},
	}
	for _, tt := range tests {
		t.Run(tt.basename, func(t *testing.T) {
			if got := matchCandidate(tt.basename, baseNames, exts); got != tt.want {
				t.Errorf("matchCandidate(%q) = %v, want %v", tt.basename, got, tt.want)
			}
		})
	}
}

func TestFindCandidatesDedup(t *testing.T) {
	dir := t.TempDir()
	files := []string{"libglfw.so.3.1", "libglfw.so.2.9", "libglfw3.so", "notalib.txt"}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Symlink and target must resolve to a single candidate.
	if err := os.Symlink(filepath.Join(dir, "libglfw.so.3.1"), filepath.Join(dir, "libglfw.so")); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	got := findCandidates(baseNames, []string{".so"}, []string{dir, dir})
	if len(got) != 3 {
		t.Fatalf("findCandidates returned %d candidates %v, want 3", len(got), got)
	}
	for _, path := range got {
		if strings.HasSuffix(path, "notalib.txt") {
			t.Errorf("non-library file matched: %s", path)
		}
	}
}

func TestSelectBest(t *testing.T) {
	versions := map[string]Version{
		"/usr/lib/libglfw.so":     {3, 0, 0},
		"/usr/lib/libglfw.so.3.1": {3, 1, 0},
		"/usr/lib/libglfw.so.2.9": {2, 9, 0},
	}
	probe := func(path string) (Version, bool) {
		v, ok := versions[path]
		return v, ok
	}
	candidates := []string{
		"/usr/lib/libglfw.so",
		"/usr/lib/libglfw.so.3.1",
		"/usr/lib/libglfw.so.2.9",
	}

	path, version, ok := selectBest(candidates, probe)
	if !ok {
		t.Fatal("selectBest found no candidate")
	}
	if path != "/usr/lib/libglfw.so.3.1" {
		t.Errorf("selected %s, want the highest qualifying version", path)
	}
	if version != (Version{3, 1, 0}) {
		t.Errorf("selected version %s, want 3.1.0", version)
	}
}

func TestSelectBestNoneQualify(t *testing.T) {
	probe := func(string) (Version, bool) { return Version{2, 7, 0}, true }
	if _, _, ok := selectBest([]string{"/usr/lib/libglfw.so"}, probe); ok {
		t.Error("selectBest accepted a pre-3.0 library")
	}
}

func TestSelectBestUnreadable(t *testing.T) {
	probe := func(string) (Version, bool) { return Version{}, false }
	if _, _, ok := selectBest([]string{"/usr/lib/libglfw.so"}, probe); ok {
		t.Error("selectBest accepted a candidate the probe rejected")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"3.3.8", Version{3, 3, 8}, false},
		{"3.0.0\n", Version{3, 0, 0}, false},
		{"3.3", Version{}, true},
		{"a.b.c", Version{}, true},
		{"", Version{}, true},
	}
	for _, tt := range tests {
		got, err := ParseVersion(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVersion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseVersion(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBackendVariant(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		opt     string
		envVar  string
		session string
		want    string
	}{
		{"darwin has no variant", "darwin", "", "", "", ""},
		{"explicit option wins", "linux", "wayland", "x11", "x11", "wayland"},
		{"env override", "linux", "", "wayland", "", "wayland"},
		{"session type fallback", "linux", "", "", "wayland", "wayland"},
		{"x11 is the default", "linux", "", "", "", "x11"},
		{"unknown override falls through", "linux", "", "mir", "", "x11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GLFW_LIBRARY_VARIANT", tt.envVar)
			t.Setenv("XDG_SESSION_TYPE", tt.session)
			if got := backendVariant(Options{Variant: tt.opt}, tt.goos); got != tt.want {
				t.Errorf("backendVariant = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadExactOverrideSkipsDiscovery(t *testing.T) {
	// An exact path is loaded as-is even when its basename matches no
	// candidate pattern; a bogus one must fail with that path, proving no
	// search ran.
	bogus := filepath.Join(t.TempDir(), "definitely-not-a-library.bin")
	_, _, err := Load(Options{Path: bogus})
	if err == nil {
		t.Fatal("Load succeeded on a nonexistent override path")
	}
	if !strings.Contains(err.Error(), bogus) {
		t.Errorf("error %q does not name the override path", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	bogus := filepath.Join(t.TempDir(), "env-override.bin")
	t.Setenv("GLFW_LIBRARY", bogus)
	_, _, err := Load(Options{})
	if err == nil {
		t.Fatal("Load succeeded on a nonexistent GLFW_LIBRARY path")
	}
	if !strings.Contains(err.Error(), bogus) {
		t.Errorf("error %q does not name the GLFW_LIBRARY path", err)
	}
}
