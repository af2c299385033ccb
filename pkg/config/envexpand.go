package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

// ExpandEnv expands {{.VAR_NAME}} references in YAML content with values from
// the process environment.
//
// Shell-style $VAR and ${VAR} are left alone: masking patterns are regexes
// and routinely end in "$".
//
// Missing variables expand to the empty string. Content that is not a valid
// template (or fails to execute) is returned unchanged so the YAML parser
// reports the real problem.
func ExpandEnv(data []byte) []byte {
	if !bytes.Contains(data, []byte("{{")) {
		return data
	}

	tmpl, err := template.New("logshield").Option("missingkey=zero").Parse(string(data))
	if err != nil {
		return data
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, environMap()); err != nil {
		return data
	}
	return buf.Bytes()
}

func environMap() map[string]string {
	env := os.Environ()
	m := make(map[string]string, len(env))
	for _, kv := range env {
		// Values may themselves contain '='
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		m[key] = value
	}
	return m
}
