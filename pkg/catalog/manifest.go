package catalog

import (
	"crypto/sha256"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hobbydesk/paintctl/pkg/logger"
)

// ManifestName is the manifest file written under the root.
const ManifestName = "manifest.json"

// brandNames maps brand directory names to display names. Directories
// not listed here fall back to capitalized hyphen-split words.
var brandNames = map[string]string{
	"ak-interactive":   "AK Interactive",
	"army-painter":     "The Army Painter",
	"colour-forge":     "Colour Forge",
	"games-workshop":   "Games Workshop",
	"monument-hobbies": "Monument Hobbies",
	"two-thin-coats":   "Two Thin Coats",
	"vallejo":          "Vallejo",
}

// Manifest describes every paint file in the repository.
type Manifest struct {
	Version     int            `json:"version"`
	CommitHash  string         `json:"commitHash"`
	GeneratedAt string         `json:"generatedAt"`
	TotalPaints int            `json:"totalPaints"`
	Files       []ManifestFile `json:"files"`
}

// ManifestFile is one paint file entry, hashed over its exact bytes.
type ManifestFile struct {
	Brand      string `json:"brand"`
	Range      string `json:"range"`
	Path       string `json:"path"`
	Hash       string `json:"hash"`
	PaintCount int    `json:"paintCount"`
}

// BrandName converts a brand directory name to its display name.
func BrandName(dir string) string {
	if name, ok := brandNames[dir]; ok {
		return name
	}
	words := strings.Split(dir, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// rangeName extracts the range from a file's first record.
func rangeName(records []Record) string {
	if len(records) > 0 {
		if s := records[0].Field("range"); s != "" {
			return s
		}
	}
	return "Unknown"
}

// commitHash returns the current git commit of root, or "unknown".
func commitHash(root string) string {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

// GenerateManifest scans every paint file under the root and builds the
// manifest, sorted by brand then range. Files that fail to read or are
// not arrays of objects are logged and left out, same as a combine run.
func GenerateManifest(opts Options) *Manifest {
	opts = opts.withDefaults()

	m := &Manifest{
		Version:     1,
		CommitHash:  commitHash(opts.Root),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, rel := range Discover(opts) {
		data, err := os.ReadFile(filepath.Join(opts.Root, rel))
		if err != nil {
			logger.Error("Skipping %s: %v", rel, err)
			continue
		}

		records, err := ParseRecords(data)
		if err != nil {
			logger.Warning("Skipping %s: %v", rel, err)
			continue
		}

		sum := sha256.Sum256(data)
		m.Files = append(m.Files, ManifestFile{
			Brand:      BrandName(brandDir(rel)),
			Range:      rangeName(records),
			Path:       filepath.ToSlash(rel),
			Hash:       fmt.Sprintf("sha256:%x", sum),
			PaintCount: len(records),
		})
		m.TotalPaints += len(records)
	}

	sort.Slice(m.Files, func(i, j int) bool {
		if m.Files[i].Brand != m.Files[j].Brand {
			return m.Files[i].Brand < m.Files[j].Brand
		}
		return m.Files[i].Range < m.Files[j].Range
	})

	return m
}

// brandDir is the first path component of a file's relative path, which
// in the data repository layout is the brand directory.
func brandDir(rel string) string {
	parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
	return parts[0]
}

// WriteManifest serializes the manifest under the root atomically.
func WriteManifest(opts Options, m *Manifest) (string, error) {
	opts = opts.withDefaults()

	data, err := encodeJSON(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(opts.Root, ManifestName)
	if err := WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
