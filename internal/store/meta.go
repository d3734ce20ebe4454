package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tuannm99/reflected/internal/fieldtype"
	"github.com/tuannm99/reflected/internal/record"
)

// ColumnMeta is the persisted description of one stored field.
type ColumnMeta struct {
	Name     string         `json:"name"`
	Type     fieldtype.Type `json:"type"`
	TypeName string         `json:"type_name"`
}

// TypeMeta is written next to the data as "<type>.meta.json".
type TypeMeta struct {
	Name      string       `json:"name"`
	Columns   []ColumnMeta `json:"columns"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func metaFor[R any](typeName string, fields []record.Field[R]) *TypeMeta {
	cols := make([]ColumnMeta, len(fields))
	for i, f := range fields {
		cols[i] = ColumnMeta{Name: f.Name, Type: f.Type, TypeName: f.TypeName}
	}
	now := time.Now()
	return &TypeMeta{Name: typeName, Columns: cols, CreatedAt: now, UpdatedAt: now}
}

// sameColumns reports the first difference between stored and wanted
// columns, or "" when they match.
func sameColumns(stored, want []ColumnMeta) string {
	if len(stored) != len(want) {
		return fmt.Sprintf("stored %d columns, schema has %d", len(stored), len(want))
	}
	for i := range stored {
		if stored[i] != want[i] {
			return fmt.Sprintf("column %d: stored %s %s, schema has %s %s",
				i, stored[i].Name, stored[i].Type, want[i].Name, want[i].Type)
		}
	}
	return ""
}

func metaPath(dir, typeName string) string {
	return filepath.Join(dir, typeName+".meta.json")
}

// writeMeta overwrites the meta file for a type.
func writeMeta(dir string, meta *TypeMeta) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	meta.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(metaPath(dir, meta.Name), data, 0o644)
}

// readMeta loads type metadata; a missing file returns (nil, nil).
func readMeta(dir, typeName string) (*TypeMeta, error) {
	data, err := os.ReadFile(metaPath(dir, typeName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var meta TypeMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("store: decode meta %s: %w", typeName, err)
	}
	return &meta, nil
}
