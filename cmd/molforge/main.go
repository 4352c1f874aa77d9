// molforge is the command line interface of the molecule generator.
package main

import "github.com/turtacn/molforge/internal/interfaces/cli"

func main() {
	cli.Execute()
}
