package pipeline

import (
	"errors"

	"afkfinder/internal/config"
	"afkfinder/internal/validate"
)

// WireValidator resolves cfg's validator configuration into a usable
// Validator. An empty ValidatorWasmPath is explicitly legal: it returns
// validate.None{} with no error. A missing or unreadable wasm file degrades
// the same way, but returns a ValidatorMissing-kind *Error alongside the
// usable None{} fallback so the caller can log a warning without treating
// it as fatal. Any other load failure (malformed module, missing exports,
// a failing create() call) is ValidatorInternal and fatal; callers must not
// use the returned validator in that case.
func WireValidator(cfg config.Config) (validate.Validator, error) {
	if cfg.ValidatorWasmPath == "" {
		return validate.None{}, nil
	}

	plugin, err := validate.LoadWasmPlugin(cfg.ValidatorWasmPath, cfg.Seed, cfg.ValidatorVersion, cfg.ValidatorBatchSize)
	if err == nil {
		return plugin, nil
	}

	if errors.Is(err, validate.ErrModuleUnreadable) {
		return validate.None{}, newError(ValidatorMissing, err)
	}
	return nil, newError(ValidatorInternal, err)
}
