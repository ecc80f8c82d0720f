package main

import "campy/cmd"

func main() {
	cmd.Execute()
}
