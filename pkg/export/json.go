// Package export serializes layout results: pretty JSON for downstream
// consumers and Graphviz renderings of the room connectivity graph.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/forgelab/dungeonforge/pkg/errors"
	"github.com/forgelab/dungeonforge/pkg/layout"
)

// WriteJSON writes a layout result as indented JSON.
func WriteJSON(w io.Writer, res *layout.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout result")
	}
	return nil
}

// SaveJSON writes a layout result to a file.
func SaveJSON(path string, res *layout.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(f, res)
}

// LoadJSON reads a previously saved layout result.
func LoadJSON(path string) (*layout.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	var res layout.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "parse layout file %s", path)
	}
	return &res, nil
}
