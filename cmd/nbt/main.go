package main

import "nbtkit/cmd/nbt/cmd"

func main() {
	cmd.Execute()
}
