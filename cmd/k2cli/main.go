// Command k2cli drives the edge-partition contract from the shell: build a
// partition from a CSV edge list, scan it back out in tree order, or run an
// aggregation pass over it.
package main

import "github.com/dataflowlabs/k2graph/cmd/k2cli/cmd"

func main() {
	cmd.Execute()
}
