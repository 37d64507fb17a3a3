package module

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-erp/internal/config"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var errEmptyCatalog = errors.New("catalog declares no modules")

// DefaultCandidates are tried, in order, after the configured path.
var DefaultCandidates = []string{
	"config/modules.yaml",
	"config/modules.yml",
	"config/modules.json",
	"modules.json",
}

// Load builds the registry from the first usable catalog document. It never
// fails: when no candidate works the built-in catalog is used.
func Load(cfg *config.Config, logger *zap.Logger) *Registry {
	candidates := make([]string, 0, len(DefaultCandidates)+1)
	if cfg.ModulesConfigPath != "" {
		candidates = append(candidates, cfg.ModulesConfigPath)
	}
	candidates = append(candidates, DefaultCandidates...)
	return LoadFrom(candidates, logger)
}

func LoadFrom(candidates []string, logger *zap.Logger) *Registry {
	for _, path := range candidates {
		modules, err := readCatalog(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Debug("module catalog not found", zap.String("path", path))
			} else {
				logger.Warn("skipping module catalog", zap.String("path", path), zap.Error(err))
			}
			continue
		}

		registry := NewRegistry(modules, path)
		if len(registry.modules) == 0 {
			logger.Warn("skipping module catalog", zap.String("path", path), zap.Error(errEmptyCatalog))
			continue
		}
		logger.Info("module catalog loaded", zap.String("path", path), zap.Int("modules", len(registry.modules)))
		return registry
	}

	logger.Warn("no usable module catalog found, using built-in default", zap.Strings("candidates", candidates))
	return NewRegistry(DefaultModules(), SourceBuiltin)
}

func readCatalog(path string) ([]ModuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyCatalog
	}

	var modules []ModuleConfig
	if strings.EqualFold(filepath.Ext(path), ".json") {
		modules, err = decodeJSON(data)
	} else {
		modules, err = decodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(modules) == 0 {
		return nil, errEmptyCatalog
	}
	return modules, nil
}

// Both decoders accept {"modules": [...]} or a bare list.
func decodeJSON(data []byte) ([]ModuleConfig, error) {
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '[' {
		var modules []ModuleConfig
		if err := json.Unmarshal(trimmed, &modules); err != nil {
			return nil, err
		}
		return modules, nil
	}

	var doc catalogDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Modules, nil
}

func decodeYAML(data []byte) ([]ModuleConfig, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errEmptyCatalog
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var modules []ModuleConfig
		if err := node.Decode(&modules); err != nil {
			return nil, err
		}
		return modules, nil
	case yaml.MappingNode:
		var doc catalogDocument
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Modules, nil
	default:
		return nil, fmt.Errorf("unexpected catalog root of kind %d", node.Kind)
	}
}
