package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	// Packages
	uitable "github.com/mutablelogic/go-agentx/pkg/ui/table"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// writeList outputs a list of resources as a table, or v as JSON or YAML
func (g *Globals) writeList(v any, data uitable.TableData, noun string) error {
	if g.Format == formatTable || g.Format == "" {
		return uitable.Write(os.Stdout, data, noun)
	}
	return write(os.Stdout, g.Format, v)
}

// writeOne outputs a single resource. The table format prints it as
// indented JSON.
func (g *Globals) writeOne(v any) error {
	if g.Format == formatYAML {
		return write(os.Stdout, formatYAML, v)
	}
	return write(os.Stdout, formatJSON, v)
}

func write(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
