package validate

import (
	"errors"
	"testing"
)

func TestLoadWasmPluginMissingFileIsUnreadable(t *testing.T) {
	_, err := LoadWasmPlugin("/nonexistent/path/validator.wasm", 1, 0, 10000)
	if err == nil {
		t.Fatalf("expected an error loading a nonexistent wasm module")
	}
	if !errors.Is(err, ErrModuleUnreadable) {
		t.Fatalf("expected errors.Is(err, ErrModuleUnreadable), got %v", err)
	}
}
