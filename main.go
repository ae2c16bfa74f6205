package main

import "github.com/pkoskela/airboard/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
