package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/sqlbuilder/pkg/node"
)

// stdinPath reads JSON from the command's input stream.
const stdinPath = "-"

// openInput opens path, or the command input for "-".
func openInput(path string, stdin io.Reader) (io.ReadCloser, node.Format, error) {
	if path == stdinPath {
		return io.NopCloser(stdin), node.FormatJSON, nil
	}
	f, err := os.Open(path) //nolint:gosec // user-supplied input file
	if err != nil {
		return nil, 0, err
	}
	return f, node.FormatFromPath(path), nil
}

// readNodes reads a node tree file holding either one node or a list of nodes.
func readNodes(path string, stdin io.Reader) ([]*node.Node, error) {
	rc, format, err := openInput(path, stdin)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	nodes, err := node.DecodeNodes(rc, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}

// readStatement reads a parsed statement file.
func readStatement(path string, stdin io.Reader) (*node.Statement, error) {
	rc, format, err := openInput(path, stdin)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	stmt, err := node.DecodeStatement(rc, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stmt, nil
}
