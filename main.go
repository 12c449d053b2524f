package main

import "github.com/jsphweid/songtask/cmd"

func main() {
	cmd.Execute()
}
