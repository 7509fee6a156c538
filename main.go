package main

import "github.com/slateworks/crewtime/cmd"

func main() {
	cmd.Execute()
}
