package config

import (
	"bytes"
	"slices"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

func decodeTOML(data []byte) (document, []string, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return document{}, nil, err
	}
	order, err := tomlFileSetOrder(data)
	if err != nil {
		return document{}, nil, err
	}
	return doc, order, nil
}

// tomlFileSetOrder walks the document expressions to recover the order in
// which names under [files] first appear. Decoding into a map loses it.
func tomlFileSetOrder(data []byte) ([]string, error) {
	var (
		p     unstable.Parser
		table []string
		order []string
	)
	seen := map[string]bool{}
	note := func(path []string) {
		if len(path) < 2 || path[0] != "files" || seen[path[1]] {
			return
		}
		seen[path[1]] = true
		order = append(order, path[1])
	}

	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(expr.Key())
			note(table)
		case unstable.KeyValue:
			path := append(slices.Clone(table), keyParts(expr.Key())...)
			note(path)
			if len(path) == 1 && path[0] == "files" {
				noteInline(expr.Value(), note)
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return order, nil
}

// noteInline records the names of a `files = { ... }` inline table in the
// order they are written.
func noteInline(v *unstable.Node, note func([]string)) {
	if v == nil || v.Kind != unstable.InlineTable {
		return
	}
	it := v.Children()
	for it.Next() {
		kv := it.Node()
		if kv.Kind != unstable.KeyValue {
			continue
		}
		note(append([]string{"files"}, keyParts(kv.Key())...))
	}
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}
