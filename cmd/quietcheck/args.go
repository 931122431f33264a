package main

// splitArgv splits an argument vector on the first "--": wrapper flags
// before it, the cppcheck argument list after it. found is false when
// no separator is present.
func splitArgv(args []string) (wrapper, forwarded []string, found bool) {
	for i, a := range args {
		if a == "--" {
			return args[:i], args[i+1:], true
		}
	}
	return nil, args, false
}

// forbiddenArgs disable filtering when forwarded to cppcheck: help
// output is not a diagnostic stream, and xml-version=1 is a format the
// filter does not understand.
var forbiddenArgs = map[string]struct{}{
	"-h":              {},
	"--help":          {},
	"--xml-version=1": {},
}

// filterUsable reports whether the forwarded argument list is
// compatible with diagnostic filtering.
func filterUsable(forwarded []string) bool {
	for _, a := range forwarded {
		if _, ok := forbiddenArgs[a]; ok {
			return false
		}
	}
	return true
}

// wantsXML reports whether the forwarded arguments select cppcheck's
// XML diagnostic format.
func wantsXML(forwarded []string) bool {
	for _, a := range forwarded {
		if a == "--xml" {
			return true
		}
	}
	return false
}
