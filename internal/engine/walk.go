package engine

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"lintsweep/internal/detect"
	"lintsweep/internal/model"
)

// walkTree collects the source files and ignore-list files under the scan
// root. Paths are returned slash separated and relative to the root.
// Oversized files are skipped with a scan-failure anomaly; the size cap
// is the walker's responsibility, not the scanner's.
func walkTree(opts Options) ([]sourceFile, []ignoreFile, []model.Anomaly, error) {
	roots := opts.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}
	ignoreNames := opts.IgnoreFiles
	if ignoreNames == nil {
		ignoreNames = DefaultIgnoreFiles
	}
	enabled := map[model.Ecosystem]bool{}
	for _, eco := range opts.Ecosystems {
		enabled[eco] = true
	}

	var sources []sourceFile
	var ignores []ignoreFile
	var anomalies []model.Anomaly
	seen := map[string]bool{}

	for _, sub := range roots {
		base := filepath.Join(opts.Root, filepath.FromSlash(sub))
		err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				// An unreadable subtree must not vanish silently.
				anomalies = append(anomalies, model.Anomaly{
					Kind:    model.AnomalyScanFailure,
					File:    relTo(opts.Root, p),
					Message: err.Error(),
				})
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			name := d.Name()
			if d.IsDir() {
				if p != base && (defaultExcludedDirs[name] || matchesExclude(opts.Excludes, relTo(opts.Root, p), name)) {
					return fs.SkipDir
				}
				return nil
			}
			rel := relTo(opts.Root, p)
			if seen[rel] || matchesExclude(opts.Excludes, rel, name) {
				return nil
			}
			seen[rel] = true
			for _, ign := range ignoreNames {
				if name == ign {
					ignores = append(ignores, ignoreFile{rel: rel, dir: path.Dir(rel)})
					return nil
				}
			}
			if opts.MaxFileBytes > 0 {
				if info, err := d.Info(); err == nil && info.Size() > int64(opts.MaxFileBytes) {
					anomalies = append(anomalies, model.Anomaly{
						Kind:    model.AnomalyScanFailure,
						File:    rel,
						Message: "file exceeds max-file-bytes, skipped",
					})
					return nil
				}
			}
			eco, ok := detectFile(p, name)
			if !ok {
				return nil
			}
			if len(enabled) > 0 && !enabled[eco] {
				return nil
			}
			sources = append(sources, sourceFile{rel: rel, eco: eco})
			return nil
		})
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return sources, ignores, anomalies, nil
}

// detectFile resolves the ecosystem by extension, reading only the first
// bytes of extensionless files for a shebang.
func detectFile(full, name string) (model.Ecosystem, bool) {
	if strings.Contains(name, ".") {
		return detect.FromPathAndContent(name, nil)
	}
	f, err := os.Open(full)
	if err != nil {
		return "", false
	}
	defer f.Close()
	buf := make([]byte, 128)
	n, _ := f.Read(buf)
	return detect.FromPathAndContent(name, buf[:n])
}

func matchesExclude(excludes []string, rel, name string) bool {
	for _, pat := range excludes {
		if pat == "" {
			continue
		}
		if ok, _ := path.Match(pat, name); ok {
			return true
		}
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if rel == pat || strings.HasPrefix(rel, pat+"/") {
			return true
		}
	}
	return false
}

func relTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		rel = p
	}
	return filepath.ToSlash(rel)
}
