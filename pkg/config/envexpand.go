package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

// ExpandEnv substitutes {{.NAME}} references in warehousecfg.yaml with the
// value of environment variable NAME, e.g. `addr: ":{{.HTTP_PORT}}"`.
// Shell-style $NAME is not touched. Unset variables become "".
// Content that does not parse as a template is returned as is; the YAML
// decoder reports whatever is wrong with it.
func ExpandEnv(data []byte) []byte {
	tmpl, err := template.New(FileName).Option("missingkey=zero").Parse(string(data))
	if err != nil {
		return data
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, environ()); err != nil {
		return data
	}
	return buf.Bytes()
}

// environ returns the process environment keyed by variable name.
func environ() map[string]string {
	vars := os.Environ()
	env := make(map[string]string, len(vars))
	for _, kv := range vars {
		if name, value, ok := strings.Cut(kv, "="); ok && name != "" {
			env[name] = value
		}
	}
	return env
}
