package main

import "github.com/assetdesk/assetdesk/cmd"

func main() {
	cmd.Execute()
}
