package types

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/miniconomy2025/ca/utils"
)

// ExtensionsSpec holds the optional extension constraints applied when signing
// server certificates. It mirrors the on-disk extensions file.
type ExtensionsSpec struct {
	// SubjectAltNames lists DNS names and IP addresses embedded as SANs.
	SubjectAltNames []string `yaml:"subject_alt_names,omitempty"`
	// ExtendedKeyUsages lists the extended key usages (e.g. serverAuth, clientAuth).
	ExtendedKeyUsages []string `yaml:"extended_key_usages,omitempty"`
}

// LoadExtensionsSpec reads and parses an extensions file.
func LoadExtensionsSpec(file string) (*ExtensionsSpec, error) {
	b, err := utils.ReadFileContent(file)
	if err != nil {
		return nil, err
	}

	spec := &ExtensionsSpec{}
	err = yaml.UnmarshalStrict(b, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extensions file %s: %w", file, err)
	}

	return spec, nil
}
