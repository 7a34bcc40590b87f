package main

import "torrent-combine/cmd"

func main() {
	cmd.Execute()
}
