package storage

import (
	"os"
)

// Exists checks if the given file or folder for a path exists
func Exists(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)
	if err != nil || os.IsNotExist(err) {
		return false
	}

	return true
}

// Save saves data to a file
func Save(name string, data []byte) error {
	exists := Exists(name)
	if exists {
		err := EraseFile(name)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(name, data, os.FileMode(0644))
}

// Read reads data from a file
func Read(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// CreateDir creates a directory
func CreateDir(dir string) error {
	return os.MkdirAll(dir, os.FileMode(0755))
}

// EraseFile erases the file
func EraseFile(file string) error {
	return os.Remove(file)
}
