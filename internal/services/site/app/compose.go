package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/kakascoaching/site/internal/services/site/module"
	"github.com/kakascoaching/site/internal/services/site/routepath"
)

// ComposeInput carries the modules and the shared dependencies they mount with.
type ComposeInput struct {
	Dependencies module.Dependencies
	Modules      []module.Module
}

// Composer wires root mux mounts for site modules.
type Composer struct{}

// Compose builds a root HTTP handler from modules.
func (Composer) Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, prefix, err := resolveMount(feature, input.Dependencies)
		if err != nil {
			return nil, err
		}
		if err := mountModule(root, feature, mount, prefix, seen); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(root *http.ServeMux, feature module.Module, mount module.Mount, prefix string, seen map[string]string) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	root.Handle(prefix, mount.Handler)
	// Section pages live at the slashless path, e.g. /notes.
	if alias := strings.TrimSuffix(prefix, "/"); alias != "" {
		root.Handle(alias, mount.Handler)
	}
	return nil
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, string, error) {
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix, err := validatePrefix(mount.Prefix)
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	switch {
	case prefix == "":
		return "", fmt.Errorf("prefix is required")
	case !strings.HasPrefix(prefix, "/") || !strings.HasSuffix(prefix, "/"):
		return "", fmt.Errorf("prefix %q must start and end with /", prefix)
	case strings.HasPrefix(prefix, routepath.StaticPrefix) || strings.HasPrefix(prefix, routepath.AssetsPrefix):
		return "", fmt.Errorf("prefix %q is reserved", prefix)
	}
	return prefix, nil
}
