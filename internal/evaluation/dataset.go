package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/bill-autoreader/internal/model"
)

// Dataset is a named set of bills with reader output and ground truth.
type Dataset struct {
	Name  string                 `json:"name" yaml:"name"`
	Cases []model.EvaluationCase `json:"cases" yaml:"cases"`
}

// LoadDataset reads a dataset from a .json, .yaml or .yml file. A dataset
// without a name is named after its file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	ds, err := ParseDataset(data, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	if ds.Name == "" {
		ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ds, nil
}

// ParseDataset decodes dataset bytes in the format named by ext.
func ParseDataset(data []byte, ext string) (*Dataset, error) {
	var ds Dataset
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}

	for i := range ds.Cases {
		if ds.Cases[i].ID == "" {
			ds.Cases[i].ID = fmt.Sprintf("case-%d", i+1)
		}
	}
	return &ds, nil
}
