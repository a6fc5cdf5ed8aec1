package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// RunCount prints the recompute result as JSON on stdout.
func RunCount(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: count <blue.yaml> <red.yaml> <cfA-cfB>...")
	}
	res, _, err := recompute(args[0], args[1], args[2:])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
