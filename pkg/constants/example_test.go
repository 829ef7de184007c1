package constants_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/signlib/pkg/constants"
)

// Example demonstrates using constants for common operations
func Example() {
	dir, err := os.MkdirTemp("", "signlib-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, constants.CatalogKey+".json")
	if err := os.WriteFile(file, []byte("[]"), constants.SecureFilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Catalog key: %s\n", constants.CatalogKey)
	fmt.Printf("Favorites key: %s\n", constants.FavoritesKey)
	fmt.Printf("Created file with %o permissions\n", constants.SecureFilePermissions)
	// Output:
	// Catalog key: signlib_v4
	// Favorites key: signlib_favs_v1
	// Created file with 600 permissions
}
