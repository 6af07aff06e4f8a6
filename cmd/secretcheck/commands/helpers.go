package commands

import (
	"github.com/sdhector/secretcheck/internal/stores"
	"github.com/sdhector/secretcheck/pkg/secretstore"
)

// toolVersion returns the underlying CLI version for stores that shell
// out to one, empty otherwise.
func toolVersion(store secretstore.Store) string {
	if g, ok := store.(*stores.GcloudStore); ok {
		return g.Version()
	}
	return ""
}
