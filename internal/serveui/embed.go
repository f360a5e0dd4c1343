// Package serveui holds the single-page web client served by skillpath serve.
package serveui

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
)

//go:embed static/index.html
var indexHTML []byte

// Settings are handed to the page as window.skillpath.
type Settings struct {
	AuthRequired bool   `json:"authRequired"`
	Provider     string `json:"provider,omitempty"`
}

var (
	headEnd        = []byte("</head>")
	errMissingHead = errors.New("serveui: page has no </head>")
)

// Page returns the UI with settings injected ahead of </head>. json.Marshal
// escapes <, > and &, so the values cannot close the script element.
func Page(s Settings) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var script bytes.Buffer
	script.WriteString("<script>window.skillpath = ")
	script.Write(data)
	script.WriteString(";</script>\n")

	i := bytes.Index(indexHTML, headEnd)
	if i < 0 {
		return nil, errMissingHead
	}
	out := make([]byte, 0, len(indexHTML)+script.Len())
	out = append(out, indexHTML[:i]...)
	out = append(out, script.Bytes()...)
	return append(out, indexHTML[i:]...), nil
}
