package main

import "github.com/Tiliavir/trivial-earnings-tracker/cmd"

func main() {
	cmd.Execute()
}
