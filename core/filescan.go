package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/guidepost-dev/guidepost/schema"
)

// AreaNotFoundError means the configured area does not exist under the repo
// root. It aborts a refresh before any output is written.
type AreaNotFoundError struct {
	Area string
	Path string
}

func (e *AreaNotFoundError) Error() string {
	return fmt.Sprintf("area %q not found at %s", e.Area, e.Path)
}

// ScanOptions tunes a single file scan.
type ScanOptions struct {
	IgnoreDirs     []string // Directory names skipped entirely
	CodeExtensions []string // Extensions whose filenames count toward naming stats
}

// Naming convention patterns, checked in precedence order. camelCase comes
// before the separator conventions, so a bare lowercase word is camelCase.
var (
	pascalCasePattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	camelCasePattern  = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	kebabCasePattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	snakeCasePattern  = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)
)

// ClassifyFilename assigns a filename stem to exactly one naming convention.
func ClassifyFilename(stem string) schema.Convention {
	switch {
	case pascalCasePattern.MatchString(stem):
		return schema.PascalCase
	case camelCasePattern.MatchString(stem):
		return schema.CamelCase
	case kebabCasePattern.MatchString(stem):
		return schema.KebabCase
	case snakeCasePattern.MatchString(stem):
		return schema.SnakeCase
	default:
		return schema.OtherConvention
	}
}

// AnalyzeFiles walks the area directory and returns extension and
// naming-convention statistics over the files it contains. Directories
// matching the ignore predicate are skipped entirely. Extension stats cover
// every counted file, with extensionless files bucketed under "(none)";
// naming stats cover only files with a configured code extension, skipping
// stems named index or __init__.
func AnalyzeFiles(areaPath string, opts ScanOptions) ([]schema.FileStat, []schema.NamingConventionStat, error) {
	info, err := os.Stat(areaPath)
	if err != nil || !info.IsDir() {
		return nil, nil, &AreaNotFoundError{Area: filepath.Base(areaPath), Path: areaPath}
	}

	ignored := make(map[string]struct{}, len(opts.IgnoreDirs))
	for _, name := range opts.IgnoreDirs {
		ignored[name] = struct{}{}
	}
	codeExts := make(map[string]struct{}, len(opts.CodeExtensions))
	for _, ext := range opts.CodeExtensions {
		codeExts[ext] = struct{}{}
	}

	extCounts := map[string]int{}
	convCounts := map[schema.Convention]int{}

	err = filepath.WalkDir(areaPath, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if d.IsDir() {
			if path == areaPath {
				return nil
			}
			if _, skip := ignored[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(name)
		bucket := ext
		if bucket == "" {
			bucket = "(none)"
		}
		extCounts[bucket]++

		if _, ok := codeExts[ext]; !ok {
			return nil
		}
		// Secondary suffixes like .test in Button.test.tsx stay in the stem.
		stem := strings.TrimSuffix(name, ext)
		if stem == "index" || stem == "__init__" {
			return nil
		}
		convCounts[ClassifyFilename(stem)]++
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", areaPath, err)
	}

	fileStats := make([]schema.FileStat, 0, len(extCounts))
	for ext, count := range extCounts {
		fileStats = append(fileStats, schema.FileStat{Extension: ext, Count: count})
	}
	schema.SortFileStats(fileStats)

	namingStats := make([]schema.NamingConventionStat, 0, len(convCounts))
	for conv, count := range convCounts {
		namingStats = append(namingStats, schema.NamingConventionStat{Convention: conv, Count: count})
	}
	schema.SortNamingStats(namingStats)

	return fileStats, namingStats, nil
}
