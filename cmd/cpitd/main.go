// Command cpitd scans one or more paths for copy-pasted and near-duplicate
// code and reports the clones it finds.
package main

import "github.com/ingo-eichhorst/cpitd/cmd"

func main() {
	cmd.Execute()
}
