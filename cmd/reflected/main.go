package main

import "github.com/tuannm99/reflected/cmd/reflected/cmd"

func main() {
	cmd.Execute()
}
