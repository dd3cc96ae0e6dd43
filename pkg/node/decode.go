package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization of a parser-output file.
type Format int

// Supported input formats.
const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFromPath picks the format from a file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a single node tree.
func Decode(r io.Reader, f Format) (*Node, error) {
	var n Node
	if err := decode(r, f, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// DecodeNodes reads a document holding either one node or a list of nodes.
func DecodeNodes(r io.Reader, f Format) ([]*Node, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	list, err := isList(b, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	if !list {
		n, err := Decode(bytes.NewReader(b), f)
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil
	}

	var nodes []*Node
	if err := decode(bytes.NewReader(b), f, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func isList(b []byte, f Format) (bool, error) {
	if f == FormatJSON {
		b = bytes.TrimSpace(b)
		return len(b) > 0 && b[0] == '[', nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return false, err
	}
	return len(doc.Content) > 0 && doc.Content[0].Kind == yaml.SequenceNode, nil
}

// DecodeStatement reads a parsed statement (a map of clause name to node list).
func DecodeStatement(r io.Reader, f Format) (*Statement, error) {
	var s Statement
	if err := decode(r, f, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func decode(r io.Reader, f Format, v any) error {
	var err error
	if f == FormatYAML {
		err = yaml.NewDecoder(r).Decode(v)
	} else {
		err = json.NewDecoder(r).Decode(v)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", f, err)
	}
	return nil
}

// wireAlias is the parser's alias record.
type wireAlias struct {
	As       bool   `json:"as" yaml:"as"`
	Name     string `json:"name" yaml:"name"`
	BaseExpr string `json:"base_expr" yaml:"base_expr"`
}

// UnmarshalJSON decodes the parser's node record, mapping the false sentinel
// of sub_tree, alias, delim and table to their typed absent values.
func (n *Node) UnmarshalJSON(b []byte) error {
	var w struct {
		ExprType string          `json:"expr_type"`
		BaseExpr string          `json:"base_expr"`
		SubTree  json.RawMessage `json:"sub_tree"`
		Alias    json.RawMessage `json:"alias"`
		Delim    json.RawMessage `json:"delim"`
		Table    json.RawMessage `json:"table"`
		JoinType json.RawMessage `json:"join_type"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	t, err := ParseExprType(w.ExprType)
	if err != nil {
		return err
	}
	*n = Node{ExprType: t, BaseExpr: w.BaseExpr}

	if raw := bytes.TrimSpace(w.SubTree); !absentJSON(raw) {
		switch raw[0] {
		case '[':
			if err := json.Unmarshal(raw, &n.SubTree); err != nil {
				return err
			}
			if n.SubTree == nil {
				n.SubTree = []*Node{}
			}
		case '{':
			n.Query = &Statement{}
			if err := json.Unmarshal(raw, n.Query); err != nil {
				return err
			}
		default:
			return fmt.Errorf("sub_tree: expected list, statement or false, got %s", raw)
		}
	}

	if raw := bytes.TrimSpace(w.Alias); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if bytes.Equal(raw, []byte("false")) {
			n.Alias = &Alias{None: true}
		} else {
			var a wireAlias
			if err := json.Unmarshal(raw, &a); err != nil {
				return fmt.Errorf("alias: %w", err)
			}
			n.Alias = &Alias{As: a.As, Name: a.Name, BaseExpr: a.BaseExpr}
		}
	}

	if n.Delim, err = optionalStringJSON(w.Delim); err != nil {
		return fmt.Errorf("delim: %w", err)
	}
	table, err := optionalStringJSON(w.Table)
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if table != nil {
		n.Table = *table
	}
	joinType, err := optionalStringJSON(w.JoinType)
	if err != nil {
		return fmt.Errorf("join_type: %w", err)
	}
	if joinType != nil {
		n.JoinType = *joinType
	}
	return nil
}

func absentJSON(raw []byte) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("false")) || bytes.Equal(raw, []byte("null"))
}

func optionalStringJSON(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if absentJSON(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var w struct {
		ExprType string    `yaml:"expr_type"`
		BaseExpr string    `yaml:"base_expr"`
		SubTree  yaml.Node `yaml:"sub_tree"`
		Alias    yaml.Node `yaml:"alias"`
		Delim    yaml.Node `yaml:"delim"`
		Table    yaml.Node `yaml:"table"`
		JoinType yaml.Node `yaml:"join_type"`
	}
	if err := value.Decode(&w); err != nil {
		return err
	}

	t, err := ParseExprType(w.ExprType)
	if err != nil {
		return err
	}
	*n = Node{ExprType: t, BaseExpr: w.BaseExpr}

	if !absentYAML(&w.SubTree) {
		switch w.SubTree.Kind {
		case yaml.SequenceNode:
			if err := w.SubTree.Decode(&n.SubTree); err != nil {
				return err
			}
			if n.SubTree == nil {
				n.SubTree = []*Node{}
			}
		case yaml.MappingNode:
			n.Query = &Statement{}
			if err := w.SubTree.Decode(n.Query); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: sub_tree: expected list, statement or false", w.SubTree.Line)
		}
	}

	switch {
	case w.Alias.Kind == 0 || w.Alias.Tag == "!!null":
	case isFalseYAML(&w.Alias):
		n.Alias = &Alias{None: true}
	default:
		var a wireAlias
		if err := w.Alias.Decode(&a); err != nil {
			return fmt.Errorf("alias: %w", err)
		}
		n.Alias = &Alias{As: a.As, Name: a.Name, BaseExpr: a.BaseExpr}
	}

	if !absentYAML(&w.Delim) {
		n.Delim = Str(w.Delim.Value)
	}
	if !absentYAML(&w.Table) {
		n.Table = w.Table.Value
	}
	if !absentYAML(&w.JoinType) {
		n.JoinType = w.JoinType.Value
	}
	return nil
}

func isFalseYAML(v *yaml.Node) bool {
	return v.Kind == yaml.ScalarNode && v.Tag == "!!bool" && strings.EqualFold(v.Value, "false")
}

func absentYAML(v *yaml.Node) bool {
	return v.Kind == 0 || v.Tag == "!!null" || isFalseYAML(v)
}
