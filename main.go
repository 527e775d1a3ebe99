package main

import "github.com/tonimelisma/yadisk-client/cmd"

func main() {
	cmd.Execute()
}
