package main

import "loyalty-sync/cmd"

func main() {
	cmd.Execute()
}
