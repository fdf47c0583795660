package main

import "github.com/A1anTm/spendsmart/cmd"

func main() {
	cmd.Execute()
}
