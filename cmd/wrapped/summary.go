package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/j-veylop/hackatime-wrapped/internal/services"
)

// writeSummary encodes s to w as "yaml" or "json".
func writeSummary(w io.Writer, s services.Summary, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
