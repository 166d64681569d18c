package main

import "github.com/AuraMage11/Weather-script/cmd/weather-sim-init/cmd"

func main() {
	cmd.Execute()
}
