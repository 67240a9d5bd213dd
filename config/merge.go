package config

import (
	"fmt"
	"maps"
	"reflect"

	"dario.cat/mergo"

	"github.com/angeloszaimis/spandx/internal/route"
)

// Merge fills every unset field of incoming from defaults and returns the
// result. Neither argument is modified. The merge is shallow: a declared
// route table or bs block in incoming replaces the default one wholesale.
// A nil incoming yields a copy of defaults, and nil defaults means Defaults().
func Merge(incoming, defaults *Config) *Config {
	if defaults == nil {
		defaults = Defaults()
	}

	merged := &Config{}
	if incoming != nil {
		*merged = *incoming
		merged.BS = maps.Clone(incoming.BS)
	}

	if err := mergo.Merge(merged, defaults, mergo.WithTransformers(shallowSections{})); err != nil {
		// Both sides are non-nil *Config values, so mergo has nothing to reject.
		panic(fmt.Sprintf("config: merge: %v", err))
	}

	return merged
}

var (
	tableType = reflect.TypeOf(route.Table{})
	bsType    = reflect.TypeOf(map[string]any{})
)

// shallowSections stops mergo from merging route tables and bs blocks key by
// key. A declared section is kept as is; an absent one takes the default.
type shallowSections struct{}

func (shallowSections) Transformer(t reflect.Type) func(dst, src reflect.Value) error {
	switch t {
	case tableType:
		return func(dst, src reflect.Value) error {
			if dst.CanSet() && !dst.Interface().(route.Table).Present() {
				dst.Set(src)
			}
			return nil
		}
	case bsType:
		// mergo only calls this for a non-nil dst map, which is kept.
		return func(dst, src reflect.Value) error {
			return nil
		}
	default:
		return nil
	}
}
