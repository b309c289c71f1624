// Package flagx splits the process arguments between the config loader and
// the command tree. Config flags (-a, -c, ...) are parsed by the config
// package; everything else goes to cobra.
package flagx

import (
	"flag"
	"strings"
)

// canonical maps "-name" and "--name" to the same key, matching the flag
// package, which accepts both forms.
func canonical(name string) string {
	return "-" + strings.TrimLeft(name, "-")
}

// split walks args and separates the allowed flags (with their values) from
// the rest. Supported forms are "-f value", "--f value", "-f=value" and
// "--f=value". A value is only consumed when it does not itself start with '-'.
func split(args []string, allowedFlags []string) (kept, rest []string) {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[canonical(f)] = struct{}{}
	}

	kept = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			rest = append(rest, arg)
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, found := allowed[canonical(name)]; found {
				kept = append(kept, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, found := allowed[canonical(arg)]; !found {
			rest = append(rest, arg)
			continue
		}

		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			kept = append(kept, args[i+1])
			i++
		}
	}

	return kept, rest
}

// FilterArgs returns only the allowed flags and their values, in order.
func FilterArgs(args []string, allowedFlags []string) []string {
	kept, _ := split(args, allowedFlags)
	return kept
}

// StripArgs returns args with the given flags (and their values) removed.
// It is the complement of FilterArgs and is used to hand the remaining
// arguments to the command tree.
func StripArgs(args []string, flags []string) []string {
	_, rest := split(args, flags)
	return rest
}

// ConfigFileFlags lists the flags that select a JSON config file.
var ConfigFileFlags = []string{"-c", "-config"}

// JsonConfigPath extracts the config file path given with -c or -config.
// Other arguments are ignored. An empty string means no file was requested.
func JsonConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFileFlags))

	return path
}
