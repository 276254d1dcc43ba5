package main

import "github.com/mouse-blink/placefold/cmd"

func main() {
	cmd.Execute()
}
