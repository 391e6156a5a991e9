/*
DESCRIPTION
  config.go reads Key=Value configuration files.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// readConfig reads the configuration file at path.
func readConfig(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseConfig(f)
}

// parseConfig parses one Key=Value pair per line. Blank lines and lines
// starting with # are ignored, as is space around keys and values.
func parseConfig(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("line %d: expected Key=Value, got %q", n, line)
		}
		vars[k] = strings.TrimSpace(v)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("could not scan config: %w", err)
	}
	return vars, nil
}
