package main

import "github.com/fretkey/fretkey/cmd"

func main() {
	cmd.Execute()
}
