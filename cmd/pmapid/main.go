package main

import "github.com/project-mosaic/mosaic/cmd/pmapid/cmd"

func main() {
	cmd.Execute()
}
