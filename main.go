package main

import "store-inventory/cmd"

func main() {
	cmd.Execute()
}
