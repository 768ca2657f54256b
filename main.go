package main

import "github.com/naka-gawa/gsoc-explorer/cmd"

func main() {
	cmd.Execute()
}
