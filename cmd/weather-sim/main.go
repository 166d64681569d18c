package main

import "github.com/AuraMage11/Weather-script/cmd/weather-sim/cmd"

func main() {
	cmd.Execute()
}
