// Package lineregister reads the operator's line register, a JSON
// document carrying display colors per line gid.
package lineregister

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kollektivlab/access/model"
)

// Line holds the display colors of one line, as HTML color strings.
type Line struct {
	FgColor string
	BgColor string
}

type LineRegister struct {
	Lines map[model.RouteID]Line
}

type lineJSON struct {
	Gid                 uint64 `json:"gid"`
	TextColorHTML       string `json:"textColorHTML"`
	BackgroundColorHTML string `json:"backgroundColorHTML"`
}

type registerJSON struct {
	Lines struct {
		Line []lineJSON `json:"line"`
	} `json:"lines"`
}

// Parse reads a line register document. Lines without both colors
// are skipped.
func Parse(r io.Reader) (*LineRegister, error) {
	var root registerJSON
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding line register: %w", err)
	}

	reg := &LineRegister{Lines: map[model.RouteID]Line{}}
	for _, line := range root.Lines.Line {
		if line.TextColorHTML == "" || line.BackgroundColorHTML == "" {
			continue
		}
		reg.Lines[model.RouteID(line.Gid)] = Line{
			FgColor: "#" + line.TextColorHTML,
			BgColor: "#" + line.BackgroundColorHTML,
		}
	}
	return reg, nil
}

// Load reads the line register from a file.
func Load(path string) (*LineRegister, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening line register: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Colors returns the display colors for a route, if registered.
func (r *LineRegister) Colors(routeID model.RouteID) (Line, bool) {
	line, ok := r.Lines[routeID]
	return line, ok
}
