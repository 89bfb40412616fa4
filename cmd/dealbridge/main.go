// dealbridge is the platform binary: `serve` runs the API server, `worker`
// runs the marketplace event consumer, `migrate` manages the schema.
package main

import "github.com/dealbridge/dealbridge/internal/interfaces/cli"

func main() {
	cli.Execute()
}
