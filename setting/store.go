package setting

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var ErrUnknownSetting = errors.New("unknown setting")

// Store keeps the current value of every schema item. Each group is saved to
// its own YAML file, <dir>/<group>.yaml. An empty dir keeps values in memory.
type Store struct {
	schema Schema
	dir    string

	mu     sync.RWMutex
	values map[string]map[string]any
}

func NewStore(schema Schema, dir string) *Store {
	s := &Store{
		schema: schema,
		dir:    dir,
		values: make(map[string]map[string]any),
	}
	for _, g := range schema {
		s.values[g.Name] = make(map[string]any)
		for _, f := range g.Fields {
			s.values[g.Name][f.Name] = cloneValue(f.Item.Default)
		}
	}
	return s
}

// Schema returns the schema backing the store.
func (s *Store) Schema() Schema {
	return s.schema
}

// Load reads every group file that exists. Missing files and missing keys
// keep their defaults; values of the wrong type are ignored.
func (s *Store) Load() error {
	if s.dir == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.schema {
		data, err := os.ReadFile(s.groupPath(g.Name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to read settings %s: %w", g.Name, err)
		}
		raw := make(map[string]any)
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse settings %s: %w", g.Name, err)
		}
		for _, f := range g.Fields {
			v, ok := raw[f.Name]
			if !ok {
				continue
			}
			normalized, err := normalize(f.Item.Type, v)
			if err != nil {
				continue
			}
			s.values[g.Name][f.Name] = normalized
		}
	}
	return nil
}

// Save writes every group file.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.schema {
		if err := s.saveGroup(g.Name); err != nil {
			return err
		}
	}
	return nil
}

// saveGroup must be called with s.mu held.
func (s *Store) saveGroup(group string) error {
	if s.dir == "" {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := yaml.Marshal(s.values[group])
	if err != nil {
		return fmt.Errorf("failed to marshal settings %s: %w", group, err)
	}

	path := s.groupPath(group)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", group, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save settings %s: %w", group, err)
	}
	return nil
}

func (s *Store) groupPath(group string) string {
	return filepath.Join(s.dir, group+".yaml")
}

// Get returns the value at "group.field".
func (s *Store) Get(path string) (any, bool) {
	group, field, ok := strings.Cut(path, ".")
	if !ok {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[group][field]
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

func (s *Store) String(path string) string {
	v, _ := s.Get(path)
	str, _ := v.(string)
	return str
}

func (s *Store) Bool(path string) bool {
	v, _ := s.Get(path)
	b, _ := v.(bool)
	return b
}

func (s *Store) Float(path string) float64 {
	v, _ := s.Get(path)
	f, _ := v.(float64)
	return f
}

func (s *Store) Int(path string) int {
	return int(s.Float(path))
}

func (s *Store) Strings(path string) []string {
	v, _ := s.Get(path)
	list, _ := v.([]string)
	return list
}

// Set validates value against the item type, coerces numbers and saves the group.
func (s *Store) Set(group, field string, value any) error {
	item, ok := s.schema.Lookup(group, field)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownSetting, group, field)
	}
	v, err := normalize(item.Type, value)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", group, field, err)
	}
	if n, isNum := v.(float64); isNum {
		v = Coerce(group+"."+field, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[group][field] = v
	return s.saveGroup(group)
}

// SetByKey sets an item addressed by its display key from raw chat text.
func (s *Store) SetByKey(key, raw string) (Entry, error) {
	entry, ok := s.schema.FlatMap()[key]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	v, err := ParseRaw(entry.Type, raw)
	if err != nil {
		return entry, err
	}
	return entry, s.Set(entry.Group, entry.Field, v)
}

// SetAll switches every boolean item on or off. The bulk toggle group is a
// command, not a setting, and keeps its value.
func (s *Store) SetAll(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.schema {
		if g.Name == BulkToggleGroup {
			continue
		}
		changed := false
		for _, f := range g.Fields {
			if f.Item.Type != TypeBoolean {
				continue
			}
			s.values[g.Name][f.Name] = on
			changed = true
		}
		if !changed {
			continue
		}
		if err := s.saveGroup(g.Name); err != nil {
			return err
		}
	}
	return nil
}

// ParseRaw converts chat text to a value of type t.
func ParseRaw(t Type, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch t {
	case TypeString:
		return raw, nil
	case TypeBoolean:
		switch strings.ToLower(raw) {
		case "开启", "开", "true", "on", "1":
			return true, nil
		case "关闭", "关", "false", "off", "0":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q", raw)
	case TypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		return n, nil
	case TypeArray:
		list := strings.FieldsFunc(raw, func(r rune) bool {
			return r == ',' || r == '，' || r == ' '
		})
		return append([]string{}, list...), nil
	}
	return nil, fmt.Errorf("unsupported type %q", t)
}

func normalize(t Type, v any) (any, error) {
	switch t {
	case TypeString:
		if str, ok := v.(string); ok {
			return str, nil
		}
	case TypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeNumber:
		switch n := v.(type) {
		case float64:
			if !math.IsNaN(n) {
				return n, nil
			}
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case uint64:
			return float64(n), nil
		}
	case TypeArray:
		switch list := v.(type) {
		case []string:
			return append([]string{}, list...), nil
		case []any:
			out := make([]string, 0, len(list))
			for _, e := range list {
				out = append(out, fmt.Sprint(e))
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("expected %s, got %T", t, v)
}

func cloneValue(v any) any {
	if list, ok := v.([]string); ok {
		return append([]string{}, list...)
	}
	return v
}
