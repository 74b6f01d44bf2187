package main

import "meeting-scheduler/cmd"

func main() {
	cmd.Execute()
}
