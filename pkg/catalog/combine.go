package catalog

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hobbydesk/paintctl/pkg/logger"
)

// DefaultOutputName is the combined output file written under the root.
const DefaultOutputName = "combined.json"

// Options controls a combine run.
type Options struct {
	// Root of the paint data repository
	Root string

	// OutputName is the combined file name, excluded from discovery
	OutputName string

	// Dedup drops records whose id was already seen in an earlier file
	Dedup bool

	// SkipDirs are directory names excluded from traversal
	SkipDirs []string

	// SkipFiles are file names excluded from discovery
	SkipFiles []string
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = "."
	}
	if o.OutputName == "" {
		o.OutputName = DefaultOutputName
	}
	return o
}

// SkipReason classifies why a discovered file contributed no records.
type SkipReason string

const (
	SkipRead  SkipReason = "read"  // file could not be read
	SkipParse SkipReason = "parse" // invalid JSON syntax
	SkipShape SkipReason = "shape" // valid JSON, not an array of objects
)

// FileResult records the outcome of one discovered file.
type FileResult struct {
	Path    string // relative to the root
	Records int    // records kept from this file
	Skipped bool
	Reason  SkipReason
	Err     error
}

// Duplicate identifies a record dropped because its identifier was
// already seen in an earlier file or earlier in the same file.
type Duplicate struct {
	Path  string
	Index int
	ID    string
}

// Report is the outcome of a combine run: the merged records in
// first-seen order plus per-file and per-duplicate diagnostics.
type Report struct {
	Records    []Record
	Files      []FileResult
	Duplicates []Duplicate
}

// Discover returns the relative paths of every input file under the
// root: regular files named *.json, minus the combined output file, the
// manifest, and the configured skip dirs/files. Traversal follows
// filepath.WalkDir, so files arrive in lexical per-directory order and
// directory symlinks are not followed; that order decides which copy of
// a duplicated id wins. Unreadable directories are logged and skipped.
func Discover(opts Options) []string {
	opts = opts.withDefaults()

	var files []string
	root := opts.Root
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warning("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && skipName(name, opts.SkipDirs) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".json") {
			return nil
		}
		if name == opts.OutputName || name == ManifestName || skipName(name, opts.SkipFiles) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		// The callback never returns errors, but keep the walk honest.
		logger.Warning("Walk of %s ended early: %v", root, err)
	}
	return files
}

func skipName(name string, skip []string) bool {
	for _, s := range skip {
		if name == s {
			return true
		}
	}
	return false
}

// Combine discovers, parses, and merges every paint file under the
// root. Per-file failures are logged and contained to that file; the
// returned report always covers everything that could be read.
func Combine(opts Options) *Report {
	opts = opts.withDefaults()

	report := &Report{}
	seen := make(map[string]bool)

	for _, rel := range Discover(opts) {
		data, err := os.ReadFile(filepath.Join(opts.Root, rel))
		if err != nil {
			logger.Error("Skipping %s: %v", rel, err)
			report.Files = append(report.Files, FileResult{Path: rel, Skipped: true, Reason: SkipRead, Err: err})
			continue
		}

		records, err := ParseRecords(data)
		if err != nil {
			reason := SkipParse
			var typeErr *json.UnmarshalTypeError
			if errors.Is(err, errNotObjectArray) || errors.As(err, &typeErr) {
				reason = SkipShape
			}
			logger.Warning("Skipping %s: %v", rel, err)
			report.Files = append(report.Files, FileResult{Path: rel, Skipped: true, Reason: reason, Err: err})
			continue
		}

		logger.Debug("Parsed %s: %d records", rel, len(records))

		kept := 0
		for i, rec := range records {
			if opts.Dedup {
				if id, ok := rec.Identifier(); ok {
					if seen[id] {
						logger.Warning("Duplicate id %q at %s[%d], keeping first occurrence", id, rel, i)
						report.Duplicates = append(report.Duplicates, Duplicate{Path: rel, Index: i, ID: id})
						continue
					}
					seen[id] = true
				}
			}
			report.Records = append(report.Records, rec)
			kept++
		}
		report.Files = append(report.Files, FileResult{Path: rel, Records: kept})
	}

	return report
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
