package config

import (
	"errors"
	"math"
	"strings"

	engineopts "lintsweep/internal/engine/opts"
)

// FromEnv builds a config layer from LINTSWEEP_* environment variables.
// Unset variables leave the corresponding field untouched.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setList(&cfg.Scan.Paths, "LINTSWEEP_PATH")
	setList(&cfg.Scan.Excludes, "LINTSWEEP_EXCLUDE")
	setList(&cfg.Scan.Ecosystems, "LINTSWEEP_ECOSYSTEMS")
	setList(&cfg.Scan.IgnoreFiles, "LINTSWEEP_IGNORE_FILES")
	setInt(&cfg.Scan.MaxFileBytes, "LINTSWEEP_MAX_FILE_BYTES", 0, math.MaxInt)
	// Allow large values here and rely on NormalizeAndValidate to enforce
	// the canonical upper bound so every input path shares one message.
	setInt(&cfg.Scan.Jobs, "LINTSWEEP_JOBS", 0, math.MaxInt)
	setString(&cfg.Scan.Root, "LINTSWEEP_ROOT")

	setString(&cfg.Report.Output, "LINTSWEEP_OUTPUT")
	setString(&cfg.Report.Fields, "LINTSWEEP_FIELDS")
	setString(&cfg.Report.Color, "LINTSWEEP_COLOR")
	setBool(&cfg.Report.Strict, "LINTSWEEP_STRICT")
	setBool(&cfg.Report.RequireReason, "LINTSWEEP_REQUIRE_REASON")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
