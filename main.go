package main

import "respkv/cmd"

func main() {
	cmd.Execute()
}
