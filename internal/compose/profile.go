// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/novel-writer/pkg/types"
)

const profileFile = "novel.yaml"

// LoadProfile reads novel.yaml from the project directory. A missing file
// yields the default profile; fields absent from the file keep their
// defaults.
func LoadProfile(projectDir string) (types.NovelProfile, error) {
	profile := types.DefaultProfile()

	data, err := os.ReadFile(filepath.Join(projectDir, profileFile))
	if err != nil {
		if os.IsNotExist(err) {
			return profile, nil
		}
		return profile, fmt.Errorf("reading %s: %w", profileFile, err)
	}

	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("parsing %s: %w", profileFile, err)
	}
	return profile, nil
}
