package helix

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CacheDir returns the directory holding exported cartoon meshes,
// creating it if needed.
func CacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}
	dir := filepath.Join(base, "helix")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}
	return dir, nil
}

// CacheInfo reports the number of cached files and their total size.
func CacheInfo() (count int, bytes int64, dir string, err error) {
	dir, err = CacheDir()
	if err != nil {
		return 0, 0, "", err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0, "", fmt.Errorf("cache info: %w", err)
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		count++
		bytes += info.Size()
	}
	return count, bytes, dir, nil
}

// CacheClear removes all cached files and returns how many were deleted.
func CacheClear() (int, error) {
	dir, err := CacheDir()
	if err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("cache clear: %w", err)
	}
	removed := 0
	for _, e := range entries {
		info, err := e.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, fmt.Errorf("cache clear: %w", err)
		}
		removed++
	}
	return removed, nil
}

// pymolPath is swapped in tests to avoid requiring a real PyMOL install.
var pymolPath = func() (string, error) {
	path, err := exec.LookPath("pymol")
	if err != nil {
		return "", fmt.Errorf("pymol not found (install it, e.g. brew install pymol): %w", err)
	}
	return path, nil
}

// ExportCartoon produces a cartoon OBJ for input, which is either a
// four-character PDB ID (fetched by PyMOL from the RCSB) or a local
// .pdb/.cif path. An optional chain restricts the export. Results are
// cached; a cached OBJ is reused without invoking PyMOL.
func ExportCartoon(input, chain string) (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}

	local := strings.ContainsAny(input, "/\\") ||
		strings.HasSuffix(input, ".pdb") || strings.HasSuffix(input, ".cif")

	var stem, loadCmd string
	if local {
		abs, err := filepath.Abs(input)
		if err != nil {
			return "", fmt.Errorf("export cartoon: %w", err)
		}
		base := filepath.Base(abs)
		stem = "local_" + strings.TrimSuffix(base, filepath.Ext(base))
		loadCmd = "load " + abs
	} else {
		stem = strings.ToUpper(input)
		loadCmd = fmt.Sprintf("set fetch_path, %s\nfetch %s, async=0", dir, stem)
	}

	objName := stem + ".obj"
	selection := "hide everything\nshow cartoon"
	if chain != "" {
		objName = stem + "_" + strings.ToUpper(chain) + ".obj"
		selection = fmt.Sprintf("select sel, chain %s\nhide everything\nshow cartoon, sel", strings.ToUpper(chain))
	}
	objPath := filepath.Join(dir, objName)

	if _, err := os.Stat(objPath); err == nil {
		return objPath, nil
	}

	pymol, err := pymolPath()
	if err != nil {
		return "", err
	}

	script := fmt.Sprintf("%s\n%s\nset cartoon_sampling, 3\nsave %s\nquit\n", loadCmd, selection, objPath)
	scriptPath := filepath.Join(dir, "export_script.pml")
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return "", fmt.Errorf("export cartoon: %w", err)
	}

	out, err := exec.Command(pymol, "-cq", scriptPath).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("export cartoon: pymol failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	if _, err := os.Stat(objPath); err != nil {
		return "", fmt.Errorf("export cartoon: pymol produced no OBJ for %s (bad PDB ID?)", input)
	}
	return objPath, nil
}

// LoadModel resolves input to a Model: .obj files load directly, local
// .pdb/.cif files and PDB IDs go through the PyMOL cartoon export first.
// Any failure means the model is unavailable and the viewer never starts.
func LoadModel(input, chain string) (*Model, error) {
	if strings.HasSuffix(input, ".obj") {
		return LoadOBJ(input)
	}
	objPath, err := ExportCartoon(input, chain)
	if err != nil {
		return nil, err
	}
	return LoadOBJ(objPath)
}
