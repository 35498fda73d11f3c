package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
robot: icub
local: wbd
urdf: /etc/icub/model.urdf
fixed_base: root_link
WBD_SUBTREES:
  - name: left_leg
    links: [l_hip_1, l_upper_leg, l_lower_leg, l_ankle_1, l_foot]
    defaultContactLink: l_foot
IDYNTREE_SKINDYNLIB_LINKS:
  - bodyPart: left_leg
    localIndex: 0
    link: l_foot
    skinFrame: l_foot_skin
use_external_torque: false
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "icub", cfg.RobotName)
	require.Len(t, cfg.Subtrees, 1)
	require.Equal(t, "l_foot", cfg.Subtrees[0].DefaultContactLink)
	mode, err := cfg.FixedBaseMode()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Period())
	_ = mode
}

func TestLoadMissingURDF(t *testing.T) {
	path := writeTemp(t, "robot: icub\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadBadSubtree(t *testing.T) {
	path := writeTemp(t, `
urdf: /x.urdf
WBD_SUBTREES:
  - name: bad
    links: [a, b]
    defaultContactLink: c
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadUnknownFixedBase(t *testing.T) {
	path := writeTemp(t, "urdf: /x.urdf\nfixed_base: nonsense\n")
	_, err := Load(path)
	require.Error(t, err)
}
