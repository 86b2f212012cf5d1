// Command ignite is a thin command-line wrapper around pkg/kv: get, set,
// and rm against a store rooted at the current working directory (or
// --dir, if given).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if err != errSilent {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
