// Package config loads the static configuration document consumed at
// process start: robot/local naming, the urdf source, the fixed-base
// selection, the skin-to-model link bijection, the subtree table and the
// optional torque-module redirection.
package config

import (
	"fmt"
	"os"

	"github.com/icub-wbd/wbcore/pkg/wbd/types"
	"gopkg.in/yaml.v3"
)

// SkinLink is one entry of the IDYNTREE_SKINDYNLIB_LINKS bijection: a
// tactile (bodyPart, localIndex) mapped to a model (link, skinFrame).
type SkinLink struct {
	BodyPart   string `yaml:"bodyPart"`
	LocalIndex int    `yaml:"localIndex"`
	Link       string `yaml:"link"`
	SkinFrame  string `yaml:"skinFrame"`
}

// SubtreeConfig is one entry of the WBD_SUBTREES table.
type SubtreeConfig struct {
	Name               string   `yaml:"name"`
	Links              []string `yaml:"links"`
	DefaultContactLink string   `yaml:"defaultContactLink"`
}

// Config is the document loaded from YAML at process start.
type Config struct {
	RobotName  string `yaml:"robot"`
	LocalName  string `yaml:"local"`
	URDFPath   string `yaml:"urdf"`
	FixedBase  string `yaml:"fixed_base"`

	SkinLinks []SkinLink      `yaml:"IDYNTREE_SKINDYNLIB_LINKS"`
	Subtrees  []SubtreeConfig `yaml:"WBD_SUBTREES"`

	TorqueModuleConnection string `yaml:"torque_module_connection"`
	UseExternalTorque      bool   `yaml:"use_external_torque"`

	PeriodMillis int `yaml:"period_ms"`
}

// Load reads and parses path, returning ErrInvalidConfig (wrapped) on any
// I/O or decode failure, or a semantic validation failure.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrInvalidConfig, path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", types.ErrInvalidConfig, path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the document is internally consistent: the fixed-base
// tag is recognised, every subtree's default-contact link is a member of
// its own link list, and subtrees are non-empty.
func (c *Config) Validate() error {
	if c.URDFPath == "" {
		return fmt.Errorf("%w: urdf path is required", types.ErrInvalidConfig)
	}
	if _, err := c.FixedBaseMode(); err != nil {
		return err
	}
	for _, st := range c.Subtrees {
		if len(st.Links) == 0 {
			return fmt.Errorf("%w: subtree %q has no member links", types.ErrInvalidConfig, st.Name)
		}
		found := false
		for _, l := range st.Links {
			if l == st.DefaultContactLink {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: subtree %q default contact link %q is not a member", types.ErrInvalidConfig, st.Name, st.DefaultContactLink)
		}
	}
	return nil
}

// FixedBaseMode translates the textual fixed_base tag into the enum the
// rigid-body model consumes.
func (c *Config) FixedBaseMode() (types.FixedBase, error) {
	switch c.FixedBase {
	case "", "none":
		return types.FixedBaseNone, nil
	case "root_link":
		return types.FixedBaseRootLink, nil
	case "l_sole":
		return types.FixedBaseLSole, nil
	case "r_sole":
		return types.FixedBaseRSole, nil
	default:
		return types.FixedBaseNone, fmt.Errorf("%w: unrecognised fixed_base %q", types.ErrInvalidConfig, c.FixedBase)
	}
}

// Period returns the configured tick period, defaulting to 10ms when
// unset, matching the design default in the concurrency model.
func (c *Config) Period() int {
	if c.PeriodMillis <= 0 {
		return 10
	}
	return c.PeriodMillis
}
