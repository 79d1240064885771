package main

import "reacji/internal/cmd"

func main() {
	cmd.Run()
}
