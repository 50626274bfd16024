package main

import "github.com/krylisp/krylisp/cmd"

func main() {
	cmd.Execute()
}
