package main

import "achievement-tracker/cmd"

func main() {
	cmd.Execute()
}
