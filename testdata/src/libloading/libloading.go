package libloading

import (
	"os"
	"plugin"

	"golang.org/x/sys/unix"
)

func loadFromFile(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	path := string(data)
	_, err = plugin.Open(path) // want `attempt to load a dynamic library from an untrusted source \(validate the path before loading, or load from a fixed location\)`
	return err
}

func loadDirect(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	_, err = unix.Dlopen(string(data), 0) // want `attempt to load a dynamic library from an untrusted source \(validate the path before loading, or load from a fixed location\)`
	return err
}

func loadFixed() error {
	_, err := plugin.Open("/usr/lib/extension.so")
	return err
}

// The parameter's origin is not visible here, so no report.
func loadCaller(path string) error {
	_, err := plugin.Open(path)
	return err
}
