package contract

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/repograde/repograde/schema"
)

// maxDetectFiles caps the walk so huge repositories stay fast.
const maxDetectFiles = 20000

// extLanguages maps file extensions to language identifiers used by the
// applicability gates. Detection is deliberately shallow; anything deeper
// belongs to a dedicated language-detection collaborator.
var extLanguages = map[string]string{
	".go":    "go",
	".py":    "python",
	".rb":    "ruby",
	".rs":    "rust",
	".java":  "java",
	".kt":    "kotlin",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cs":    "csharp",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".php":   "php",
	".swift": "swift",
	".scala": "scala",
	".sh":    "shell",
}

// skipDirs are directories never scanned during language detection.
var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"target":       {},
	".venv":        {},
}

// NewRepository builds a Repository value for the given path, detecting
// languages by file extension.
func NewRepository(path string) (schema.Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return schema.Repository{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return schema.Repository{}, err
	}
	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	return schema.Repository{
		Name:      filepath.Base(abs),
		Path:      abs,
		Languages: DetectLanguages(abs),
	}, nil
}

// DetectLanguages walks the repository and returns a sorted list of detected
// languages. Errors during the walk are ignored; detection is best-effort.
func DetectLanguages(root string) []string {
	seen := make(map[string]struct{})
	count := 0

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		count++
		if count > maxDetectFiles {
			return filepath.SkipAll
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if lang, ok := extLanguages[ext]; ok {
			seen[lang] = struct{}{}
		}
		return nil
	})

	langs := make([]string, 0, len(seen))
	for l := range seen {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}
