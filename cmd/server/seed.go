package main

import (
	"fmt"
	"os"

	"github.com/rpggio/todolist/internal/domain/todo"
	"gopkg.in/yaml.v3"
)

// loadSeedFile reads todos from a YAML file. JSON arrays parse as YAML too.
// A top-level "todos" key is accepted as well as a bare list.
func loadSeedFile(path string) ([]todo.Todo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.MappingNode {
		var wrapped struct {
			Todos []todo.Todo `yaml:"todos"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("parse seed file: %w", err)
		}
		return wrapped.Todos, nil
	}

	var items []todo.Todo
	if err := root.Decode(&items); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return items, nil
}
