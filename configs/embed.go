package configs

import (
	"embed"
)

// DefaultSuite 為內建稽核套組的檔名。
const DefaultSuite = "default.yaml"

// FS provides embedded audit suite YAMLs for external usage.
//
//go:embed *.yaml
var FS embed.FS

// Default 回傳內建稽核套組的原始 YAML。
func Default() ([]byte, error) {
	return FS.ReadFile(DefaultSuite)
}
