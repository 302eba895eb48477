// Package checks holds the built-in check implementations and the attribute
// catalog they are registered under.
package checks

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// catalogFile is the on-disk shape of an attribute catalog.
type catalogFile struct {
	Attributes []schema.Attribute `yaml:"attributes"`
}

// checkFactory builds a check for a catalog attribute. The registry is
// static; a user catalog can retune attribute metadata but cannot introduce
// new check behavior.
type checkFactory func(attr schema.Attribute) contract.Check

var registry = map[string]checkFactory{
	"has_readme":       filePresenceFactory([]string{"README*"}, "add a README describing the project"),
	"has_license":      filePresenceFactory([]string{"LICENSE*", "COPYING*"}, "add a LICENSE file with an OSI-approved license"),
	"has_gitignore":    filePresenceFactory([]string{".gitignore"}, "add a .gitignore for build artifacts"),
	"has_ci_workflow":  filePresenceFactory([]string{".github/workflows/*.yml", ".github/workflows/*.yaml", ".gitlab-ci.yml", ".circleci/config.yml"}, "add a CI workflow definition"),
	"has_lint_config":  filePresenceFactory([]string{".golangci.yml", ".golangci.yaml", ".eslintrc*", "ruff.toml", ".ruff.toml", ".flake8", ".rubocop.yml", "tslint.json"}, "add a linter configuration file"),
	"has_contributing": filePresenceFactory([]string{"CONTRIBUTING*", "docs/CONTRIBUTING*", ".github/CONTRIBUTING*"}, "add a CONTRIBUTING guide"),
	"has_changelog":    filePresenceFactory([]string{"CHANGELOG*", "CHANGES*", "HISTORY*"}, "add a CHANGELOG tracking notable changes"),
	"has_docs_dir":     filePresenceFactory([]string{"docs", "doc"}, "add a docs directory for long-form documentation"),
	"has_editorconfig": filePresenceFactory([]string{".editorconfig"}, "add an .editorconfig for consistent formatting"),
	"test_layout":      func(attr schema.Attribute) contract.Check { return &testLayoutCheck{attr: attr} },
	"lint_clean":       func(attr schema.Attribute) contract.Check { return &golangciLintCheck{attr: attr} },
}

// LoadCatalog loads the attribute catalog and builds the checks registered
// for its attributes, in catalog order. An empty path loads the embedded
// default catalog; otherwise the file at path replaces it wholesale.
func LoadCatalog(path string) (schema.AttributeIndex, []contract.Check, error) {
	raw := embeddedCatalog
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read catalog %q: %w", path, err)
		}
	}

	var cat catalogFile
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(cat.Attributes) == 0 {
		return nil, nil, fmt.Errorf("catalog contains no attributes")
	}

	idx, err := schema.BuildAttributeIndex(cat.Attributes)
	if err != nil {
		return nil, nil, err
	}

	list := make([]contract.Check, 0, len(cat.Attributes))
	for _, attr := range cat.Attributes {
		factory, ok := registry[attr.ID]
		if !ok {
			contract.LogWarn(fmt.Sprintf("no check registered for attribute %q, it will not be assessed", attr.ID), nil)
			continue
		}
		list = append(list, factory(attr))
	}
	return idx, list, nil
}
