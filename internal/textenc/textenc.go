// Package textenc decodes SQL input files written in legacy console
// encodings into UTF-8.
package textenc

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// charmaps maps encoding names to their decoders. Names are matched
// case-insensitively.
var charmaps = map[string]encoding.Encoding{
	"cp1251":       charmap.Windows1251,
	"windows-1251": charmap.Windows1251,
	"cp866":        charmap.CodePage866,
	"koi8-r":       charmap.KOI8R,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
}

// Names returns the supported encoding names, sorted. "utf-8" is always
// first since it is the default.
func Names() []string {
	names := make([]string, 0, len(charmaps)+1)
	for name := range charmaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{"utf-8"}, names...)
}

// Decode converts raw input bytes in the named encoding to a UTF-8 string.
// An empty name or "utf-8" passes the input through with any BOM stripped.
func Decode(data []byte, name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf-8", "utf8":
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}

	enc, ok := charmaps[key]
	if !ok {
		return "", fmt.Errorf("unsupported encoding %q (supported: %s)", name, strings.Join(Names(), ", "))
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s input: %w", key, err)
	}
	return string(decoded), nil
}
