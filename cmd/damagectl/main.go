package main

import "car-damage-bot/internal/cli"

func main() {
	cli.Execute()
}
