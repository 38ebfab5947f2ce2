package main

import "github.com/miniconomy2025/ca/cmd"

func main() {
	cmd.Execute()
}
