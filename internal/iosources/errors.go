package iosources

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/pkg/errcode"
)

// SourcesConfigError creates an error for an unreadable or invalid
// sources.yaml.
func SourcesConfigError(path string, err error) error {
	msg := `Cannot load sources configuration

<em>File:</em> %s

<em>How to fix:</em>
  1. Check the file exists and is valid YAML
  2. Each entry needs a known name (iucn, wikidata, wikipedia, col)
     and a cache path`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.SourcesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load sources config: %w", err),
	}
}
