package main

import "github.com/notargets/gorad/cmd"

func main() {
	cmd.Execute()
}
