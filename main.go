package main

import "roadwatch/cmd"

func main() {
	cmd.Execute()
}
