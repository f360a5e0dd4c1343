package main

import "github.com/skillpath/skillpath/cmd"

func main() {
	cmd.Execute()
}
