package main

import "github.com/debtools/dotnet-deb/cmd/dotnet-deb/cmd"

func main() {
	cmd.Execute()
}
