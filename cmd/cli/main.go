// envsync - environment definition inspection tool
//
// envsync prints labeled YAML dumps of environment definitions when run in
// verbose mode, so they can be reviewed before synchronization.
package main

import (
	"os"

	"github.com/foreman-envsync/envsync/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
