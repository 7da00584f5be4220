package main

import "github.com/diogo/kondate/internal/commands"

func main() {
	commands.Execute()
}
