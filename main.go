package main

import "idea-incubation-system/cmd/server"

func main() {
	server.Init()
	server.Run()
}
