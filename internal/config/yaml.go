package config

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (document, []string, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return document{}, nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return document{}, nil, err
	}
	return doc, yamlFileSetOrder(&root), nil
}

// yamlFileSetOrder reads the keys of the top-level files mapping in document
// order.
func yamlFileSetOrder(root *yaml.Node) []string {
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "files" {
			continue
		}
		files := root.Content[i+1]
		if files.Kind != yaml.MappingNode {
			return nil
		}
		order := make([]string, 0, len(files.Content)/2)
		for j := 0; j+1 < len(files.Content); j += 2 {
			order = append(order, files.Content[j].Value)
		}
		return order
	}
	return nil
}
