package main

import "github.com/kozaktomas/photo-calendar/cmd"

func main() {
	cmd.Execute()
}
