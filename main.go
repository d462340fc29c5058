package main

import "ghsearch/cmd"

func main() {
	cmd.Execute()
}
