// Package detect maps source files to the suppression ecosystem that
// applies to them, by extension first and shebang as a fallback.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"

	"lintsweep/internal/model"
)

var extensionEcosystems = map[string]model.Ecosystem{
	".py":  model.EcosystemPython,
	".pyi": model.EcosystemPython,
	".pyw": model.EcosystemPython,
	".js":  model.EcosystemJsTs,
	".jsx": model.EcosystemJsTs,
	".mjs": model.EcosystemJsTs,
	".cjs": model.EcosystemJsTs,
	".ts":  model.EcosystemJsTs,
	".tsx": model.EcosystemJsTs,
	".mts": model.EcosystemJsTs,
	".cts": model.EcosystemJsTs,
}

var shebangEcosystems = map[string]model.Ecosystem{
	"python": model.EcosystemPython,
	"node":   model.EcosystemJsTs,
	"deno":   model.EcosystemJsTs,
	"bun":    model.EcosystemJsTs,
}

// FromPathAndContent resolves the ecosystem for a file. The second return
// value is false when the file belongs to no supported ecosystem.
func FromPathAndContent(p string, data []byte) (model.Ecosystem, bool) {
	ext := strings.ToLower(filepath.Ext(p))
	if eco, ok := extensionEcosystems[ext]; ok {
		return eco, true
	}
	if ext == "" {
		if eco, ok := fromShebang(data); ok {
			return eco, true
		}
	}
	return "", false
}

func fromShebang(data []byte) (model.Ecosystem, bool) {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return "", false
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	line := strings.ToLower(string(data[:end]))
	for key, eco := range shebangEcosystems {
		if strings.Contains(line, key) {
			return eco, true
		}
	}
	return "", false
}

// ParseEcosystem normalises a user-supplied ecosystem name.
func ParseEcosystem(name string) (model.Ecosystem, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "python", "py", "pylint":
		return model.EcosystemPython, true
	case "jsts", "js", "ts", "javascript", "typescript", "eslint":
		return model.EcosystemJsTs, true
	default:
		return "", false
	}
}
