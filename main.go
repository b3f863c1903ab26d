package main

import "github.com/mpapenbr/race-replay-go/cmd"

func main() {
	cmd.Execute()
}
