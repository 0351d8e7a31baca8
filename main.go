package main

import "github.com/Yates-Labs/historian/cmd"

func main() {
	cmd.Execute()
}
