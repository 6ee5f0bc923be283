// Command menuctl loads a menu resource and inspects it from the terminal:
// list categories, browse with the same filter and search rules as the API,
// show one item, or validate a menu file before publishing it.
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
