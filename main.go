/*
This is an example of application that will use the
pipeline package to test things out
*/
package main

import (
	"flag"

	"github.com/spaghettifunk/ukiyo/testbed"
)

func main() {
	configPath := flag.String("config", "assets/pipeline.toml", "path to the pipeline configuration")
	flag.Parse()

	if err := testbed.Run(*configPath); err != nil {
		panic(err)
	}
}
