package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// FileName is the manifest file looked up at the project root.
const FileName = "package.json"

const nameKey = "name"

// Info holds the manifest fields shown to the user after scaffolding.
type Info struct {
	Name       string
	RawVersion string
	Version    *semver.Version // nil when absent or not a semantic version
}

// SetName rewrites the manifest at path so its top-level "name" equals name.
// If the manifest has no name field one is appended. The file keeps its
// permission bits.
func SetName(path, name string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}

	out, err := rewriteName(data, name)
	if err != nil {
		return fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Inspect reads the name and version of the manifest at path.
func Inspect(path string) (*Info, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Name    string          `json:"name"`
		Version json.RawMessage `json:"version"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	info := &Info{Name: raw.Name}
	var version string
	if len(raw.Version) > 0 && json.Unmarshal(raw.Version, &version) == nil && version != "" {
		info.RawVersion = version
		if v, err := semver.NewVersion(version); err == nil {
			info.Version = v
		}
	}
	return info, nil
}

// rewriteName walks the top-level object token by token so key order is kept.
// Member values are copied verbatim as raw JSON.
func rewriteName(data []byte, name string) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("manifest is not a JSON object")
	}

	nameValue, err := encodeString(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	members := 0
	seenName := false

	writeMember := func(key string, value []byte) error {
		encodedKey, err := encodeString(key)
		if err != nil {
			return err
		}
		if members > 0 {
			buf.WriteByte(',')
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(value)
		members++
		return nil
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		if key == nameKey {
			// Duplicate keys collapse into the first position.
			if seenName {
				continue
			}
			seenName = true
			value = nameValue
		}
		if err := writeMember(key, value); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level object")
	}

	if !seenName {
		if err := writeMember(nameKey, nameValue); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// encodeString returns s as a JSON string literal without HTML escaping.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return []byte(strings.TrimSuffix(buf.String(), "\n")), nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
