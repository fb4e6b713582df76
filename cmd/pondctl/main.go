package main

import "github.com/atdiar/zui-filepond/cmd/pondctl/cmd"

func main() {
	cmd.Execute()
}
