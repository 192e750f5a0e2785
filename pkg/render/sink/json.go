package sink

import (
	"bytes"

	"github.com/matzehuels/boxbake/pkg/layoutfile"
)

// RenderJSON exports the result as indented JSON. The output reads back with
// [layoutfile.ReadResult].
func RenderJSON(res *layoutfile.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := layoutfile.WriteResult(res, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
