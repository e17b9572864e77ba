package initcmd

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

const configHeader = "# Declared file sets. Run `envconf` to create or update each output.\n\n"

type setDecl struct {
	Template    string   `toml:"template"`
	Output      string   `toml:"output"`
	AllowEmpty  []string `toml:"allow-empty,omitempty"`
	ForcePrompt []string `toml:"force-prompt-on-create,omitempty"`
}

type configDoc struct {
	Files map[string]setDecl `toml:"files"`
}

// renderConfig encodes file sets as envconf.toml. Sets are written in name
// order.
func renderConfig(sets map[string]setDecl) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := toml.NewEncoder(&buf)
	enc.SetArraysMultiline(false)
	if err := enc.Encode(configDoc{Files: sets}); err != nil {
		return "", fmt.Errorf("init: encode %s: %w", fileConfig, err)
	}
	return buf.String(), nil
}

func mustRenderConfig(sets map[string]setDecl) string {
	s, err := renderConfig(sets)
	if err != nil {
		panic(err)
	}
	return s
}
