package userlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/roster/internal/domain"
)

func TestEveryKindHasAMessage(t *testing.T) {
	catalog := DefaultCatalog()
	seen := make(map[string]domain.ErrorKind)

	for _, kind := range domain.ErrorKinds {
		key := MessageKey(kind)
		if other, dup := seen[key]; dup {
			t.Errorf("%s and %s share key %q", kind, other, key)
		}
		seen[key] = kind

		assert.NotEqual(t, key, catalog.Localize(key), "missing catalog entry for %s", kind)
	}
}

func TestCatalogFallsBackToKey(t *testing.T) {
	assert.Equal(t, "no_such_key", Catalog{}.Localize("no_such_key"))
	assert.Equal(t, "hola", Catalog{KeyUnknown: "hola"}.Localize(KeyUnknown))
}

func TestLocalizerOption(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := NewController(ctx, nil, WithLocalizer(Catalog{KeyServerError: "kaputt"}))
	defer c.Close()

	assert.Equal(t, "kaputt", c.message(domain.KindServerError))
	assert.Equal(t, KeyUnknown, c.message(domain.KindUnknown))
}
