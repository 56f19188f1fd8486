package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for snapshot files that are neither JSON nor YAML.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Snapshot is a project tree stored in a file. The task fields mirror the
// save payload, so an exported request body loads as a snapshot too.
type Snapshot struct {
	ProjectID      string       `json:"project_id" yaml:"project_id"`
	ProjectName    string       `json:"project_name,omitempty" yaml:"project_name,omitempty"`
	RootID         string       `json:"root_id,omitempty" yaml:"root_id,omitempty"`
	Tasks          []TaskImport `json:"tasks" yaml:"tasks"`
	DeletedItemIDs []string     `json:"deleted_item_ids,omitempty" yaml:"deleted_item_ids,omitempty"`
}

// TaskImport is one task with its subtasks nested.
type TaskImport struct {
	ItemID       string       `json:"item_id" yaml:"item_id"`
	ParentItemID *string      `json:"parent_item_id,omitempty" yaml:"parent_item_id,omitempty"`
	Name         string       `json:"name" yaml:"name"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"`
	DueDate      *string      `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	IsCompleted  bool         `json:"is_completed,omitempty" yaml:"is_completed,omitempty"`
	IsMinimized  bool         `json:"is_minimized,omitempty" yaml:"is_minimized,omitempty"`
	PlannedHours *HoursValue  `json:"planned_hours,omitempty" yaml:"planned_hours,omitempty"`
	DisplayOrder *int         `json:"display_order,omitempty" yaml:"display_order,omitempty"`
	Subtasks     []TaskImport `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
}

// HoursValue holds planned hours as written in the file. The save payload
// sends hours as strings while hand-written files tend to use numbers; both
// decode into the same text.
type HoursValue string

func (h *HoursValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*h = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*h = HoursValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("planned_hours: %w", err)
	}
	*h = HoursValue(n.String())
	return nil
}

func (h *HoursValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("planned_hours: line %d: expected a number or string", value.Line)
	}
	if value.Tag == "!!null" {
		*h = ""
		return nil
	}
	*h = HoursValue(value.Value)
	return nil
}

// DetectFormat picks the encoding from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s (use .json, .yaml or .yml)", ErrUnknownFormat, path)
	}
}

// ParseSnapshot decodes a snapshot in the given format.
func ParseSnapshot(data []byte, format Format) (*Snapshot, error) {
	var snap Snapshot
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing snapshot: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &snap, nil
}

// LoadSnapshot reads and parses a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSnapshot(data, format)
}

// EncodeSnapshot writes snap in the given format.
func EncodeSnapshot(snap *Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
