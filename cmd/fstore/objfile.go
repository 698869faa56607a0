package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/JorrenH/solid-fluent-store/value"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func readAll(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getDoc reads a JSON or YAML document from path, or stdin for "-".
func getDoc(cc *cli.Context, path string) (*value.Node, error) {
	d, err := readAll(cc, path)
	if err != nil {
		return nil, err
	}
	return decodeDoc(d)
}

func decodeDoc(d []byte) (*value.Node, error) {
	if len(bytes.TrimSpace(d)) == 0 {
		return value.Null(), nil
	}
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, err
	}
	return value.FromAny(v)
}

func docArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return "-"
}

// encodeDoc renders n as indented JSON, or YAML with -y or a YAML -o file.
func (cfg *MainConfig) encodeDoc(n *value.Node) ([]byte, error) {
	v := value.ToAny(n)
	if cfg.Y || cfg.outYAML {
		return yaml.Marshal(v)
	}
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(d, '\n'), nil
}

func (cfg *MainConfig) writeDoc(w io.Writer, n *value.Node) error {
	d, err := cfg.encodeDoc(n)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = w.Write(d)
	return err
}
