package settings

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile reads settings input from a YAML file:
//
//	filter: "app:*,!app:noisy"
//	pretty:
//	  enabled: true
//	  levelLabel: true
//	data:
//	  time: true
func LoadFile(path string) (Input, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Input{}, errors.Wrapf(err, "failed to read from %s", path)
	}
	in, err := ParseYAML(b)
	return in, errors.Wrapf(err, "failed to parse %s", path)
}

// ParseYAML decodes settings input. Unknown keys are rejected; an empty
// document is an empty Input.
func ParseYAML(b []byte) (Input, error) {
	var in Input
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && err != io.EOF {
		return Input{}, errors.Wrapf(err, "failed to unmarshal")
	}
	return in, nil
}
