package url

// defaultPorts maps schemes to the port implied when the input carries none.
var defaultPorts = map[string]uint16{
	"ftp":    20,
	"http":   80,
	"https":  443,
	"gemini": 1965,
}

// DefaultPort returns the default port for a scheme and whether the scheme
// has one.
func DefaultPort(scheme string) (uint16, bool) {
	port, ok := defaultPorts[scheme]
	return port, ok
}
