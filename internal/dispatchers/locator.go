package dispatchers

import "fmt"

// Locator resolves string handler references the dispatcher cannot build
// by itself.
type Locator interface {
	Has(key string) bool
	Get(key string) (any, error)
}

// MapLocator is a Locator backed by a map. A value of type func() any is
// called on every Get.
type MapLocator map[string]any

func (m MapLocator) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func (m MapLocator) Get(key string) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("locator: no entry for %q", key)
	}
	if build, ok := v.(func() any); ok {
		return build(), nil
	}
	return v, nil
}
