package main

import "github.com/ypbank/finparser/cmd/ypb/cmd"

func main() {
	cmd.Execute()
}
