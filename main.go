package main

import "github.com/sawaday/gh-log/cmd"

func main() {
	cmd.Execute()
}
