package config

import (
	"errors"
	"math"
	"strings"

	engineopts "codesync/internal/engine/opts"
)

// FromEnv builds a config layer from CODESYNC_* environment variables.
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

	setString(&cfg.Engine.Tag, "CODESYNC_TAG")
	setList(&cfg.Engine.Paths, "CODESYNC_PATH")
	setList(&cfg.Engine.Excludes, "CODESYNC_EXCLUDE")
	setBool(&cfg.Engine.ExcludeTypical, "CODESYNC_EXCLUDE_TYPICAL")
	setInt(&cfg.Engine.MaxFileBytes, "CODESYNC_MAX_FILE_BYTES", 0, math.MaxInt)
	// Allow large values here and rely on NormalizeAndValidate to enforce the
	// canonical upper bound so every input path shares the same error message.
	setInt(&cfg.Engine.Jobs, "CODESYNC_JOBS", 0, math.MaxInt)
	setString(&cfg.Engine.Repo, "CODESYNC_REPO")
	setString(&cfg.Engine.Output, "CODESYNC_OUTPUT")
	setString(&cfg.Engine.Color, "CODESYNC_COLOR")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
