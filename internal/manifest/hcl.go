package manifest

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/footprint-tools/routeshell/internal/route"
)

// hclFile is the top-level structure of an HCL manifest:
//
//	route "deploy" {
//	  route    = "deploy <env> [--force]"
//	  handler  = "deploy"
//	  defaults = { force = false }
//	}
type hclFile struct {
	Routes []*hclRoute `hcl:"route,block"`
	Remain hcl.Body    `hcl:",remain"`
}

type hclRoute struct {
	Name                string            `hcl:"name,label"`
	Route               *string           `hcl:"route,optional"`
	PrependCommand      *bool             `hcl:"prepend_command_to_route,optional"`
	Constraints         map[string]string `hcl:"constraints,optional"`
	Defaults            cty.Value         `hcl:"defaults,optional"`
	Aliases             map[string]string `hcl:"aliases,optional"`
	Filters             map[string]string `hcl:"filters,optional"`
	Validators          map[string]string `hcl:"validators,optional"`
	Description         *string           `hcl:"description,optional"`
	ShortDescription    *string           `hcl:"short_description,optional"`
	OptionsDescriptions map[string]string `hcl:"options_descriptions,optional"`
	Handler             *string           `hcl:"handler,optional"`
}

func decodeHCL(filename string, data []byte) ([]route.Declaration, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, diags
	}

	decls := make([]route.Declaration, 0, len(parsed.Routes))
	for _, r := range parsed.Routes {
		defaults, err := ctyDefaults(r.Defaults)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", r.Name, err)
		}

		d := route.Declaration{
			Name:                r.Name,
			Route:               deref(r.Route),
			PrependCommand:      r.PrependCommand,
			Constraints:         r.Constraints,
			Defaults:            defaults,
			Aliases:             r.Aliases,
			Filters:             stringsToAny(r.Filters),
			Validators:          stringsToAny(r.Validators),
			Description:         deref(r.Description),
			ShortDescription:    deref(r.ShortDescription),
			OptionsDescriptions: r.OptionsDescriptions,
		}
		if r.Handler != nil {
			d.Handler = *r.Handler
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func ctyDefaults(v cty.Value) (map[string]any, error) {
	if v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("defaults must be an object, got %s", ty.FriendlyName())
	}

	out := make(map[string]any, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		key, val := it.Element()
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("default %q: %w", key.AsString(), err)
		}
		out[key.AsString()] = native
	}
	return out, nil
}

// ctyToNative converts scalar defaults; whole numbers become int64.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	switch ty := v.Type(); ty {
	case cty.String:
		return v.AsString(), nil
	case cty.Bool:
		return v.True(), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringsToAny(m map[string]string) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
