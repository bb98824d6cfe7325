// Package workspace validates the build root before any toolchain invocation.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the build manifest expected in the workspace root.
const ManifestName = "Cargo.toml"

type manifest struct {
	Workspace *struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

// Check verifies that root contains a Cargo.toml declaring a [workspace]
// table. Any violation is fatal for the caller: builds must not start against
// a root that is not the umbrella workspace.
func Check(root string) error {
	path := filepath.Join(root, ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no %s found in %s; run from the workspace root", ManifestName, root)
		}
		return fmt.Errorf("read manifest %q: %w", path, err)
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest %q: %w", path, err)
	}
	if m.Workspace == nil {
		return fmt.Errorf("%s is not a cargo workspace: %s has no [workspace] table", root, ManifestName)
	}
	return nil
}
