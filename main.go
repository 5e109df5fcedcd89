package main

import "boardsight/cmd"

func main() {
	cmd.Execute()
}
