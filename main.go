// Dropdock - a floating shelf for files on their way somewhere else.
//
// Drag files onto the panel, browse into dropped folders, drag items back
// out to other applications. The shelf is in-memory only.
package main

import (
	"os"

	"github.com/dropdock/dropdock/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
