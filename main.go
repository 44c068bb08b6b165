package main

import "github.com/CosmoTheDev/eventsync/cmd"

func main() {
	cmd.Execute()
}
