package main

import "go-restaurant-pos/commands"

func main() {
	commands.Execute()
}
