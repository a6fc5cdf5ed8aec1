package main

import (
	"log"
	"os"
)

const usage = `usage:
  worker count <blue.yaml> <red.yaml> <cfA-cfB>...
  worker dot   <blue.yaml> <red.yaml> <outDir> <cfA-cfB>...`

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	var err error
	switch os.Args[1] {
	case "count":
		err = RunCount(os.Args[2:])
	case "dot":
		err = RunDOT(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s\n%s", os.Args[1], usage)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}
