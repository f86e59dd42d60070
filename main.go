package main

import "github.com/naka-gawa/project-pulse/cmd"

func main() {
	cmd.Execute()
}
