package cmd

import "strings"

// longFlags may also be written with a single dash.
var longFlags = map[string]bool{
	"trans":     true,
	"tempo":     true,
	"lyrics":    true,
	"format":    true,
	"config":    true,
	"log-level": true,
	"listen":    true,
}

// normalizeArgs rewrites "-trans 2" and "-tempo=10" to their double dash
// form. Everything after "--" is left alone.
func normalizeArgs(args []string) []string {
	res := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(res, args[i:]...)
		}
		if strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") {
			name := strings.SplitN(a[1:], "=", 2)[0]
			if longFlags[name] {
				a = "-" + a
			}
		}
		res = append(res, a)
	}
	return res
}
