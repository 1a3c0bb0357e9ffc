// Command settings inspects and edits the persisted application settings.
//
//	settings --reset                 # restore every section to defaults
//	settings get appearance.theme
//	settings set appearance.theme light
//	settings reset appearance
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
