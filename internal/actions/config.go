package actions

import (
	"context"
	"fmt"

	"github.com/footprint-tools/routeshell/internal/dispatchers"
	"github.com/footprint-tools/routeshell/internal/domain"
	"github.com/footprint-tools/routeshell/internal/ui"
	"github.com/footprint-tools/routeshell/internal/usage"
)

// ConfigGet prints the effective value of <key>.
func ConfigGet(deps Deps) dispatchers.Handler {
	return dispatchers.FromErrorFunc(func(_ context.Context, req *dispatchers.Request) error {
		key := req.Params.String("key", "")
		if !domain.IsValidConfigKey(key) {
			return usage.InvalidConfigKey(key)
		}
		value, _ := deps.Config.Get(key)
		req.Console.WriteLine(value)
		return nil
	})
}

// ConfigSet writes <key>=<value> to the config file.
func ConfigSet(deps Deps) dispatchers.Handler {
	return dispatchers.FromErrorFunc(func(_ context.Context, req *dispatchers.Request) error {
		key := req.Params.String("key", "")
		value := req.Params.String("value", "")
		if err := deps.Config.Set(key, value); err != nil {
			return err
		}
		req.Console.WriteLine(fmt.Sprintf("set %s=%s", key, value))
		return nil
	})
}

// ConfigUnset removes <key> from the config file.
func ConfigUnset(deps Deps) dispatchers.Handler {
	return dispatchers.FromErrorFunc(func(_ context.Context, req *dispatchers.Request) error {
		key := req.Params.String("key", "")
		if err := deps.Config.Unset(key); err != nil {
			return err
		}
		req.Console.WriteLine("unset " + key)
		return nil
	})
}

// ConfigList prints every visible key with its effective value, by section.
func ConfigList(deps Deps) dispatchers.Handler {
	return dispatchers.FromErrorFunc(func(_ context.Context, req *dispatchers.Request) error {
		values, err := deps.Config.GetAll()
		if err != nil {
			return err
		}

		visible := domain.VisibleConfigKeys()
		for i, section := range domain.ConfigSections() {
			if i > 0 {
				req.Console.WriteLine("")
			}
			req.Console.WriteLine("# "+section, ui.ColorGray)
			for _, key := range visible {
				if key.Section == section {
					req.Console.WriteLine(fmt.Sprintf("%s=%s", key.Name, values[key.Name]))
				}
			}
		}
		return nil
	})
}
