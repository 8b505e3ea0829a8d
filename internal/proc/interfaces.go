package proc

import (
	"os"
	"os/exec"
)

//go:generate mockgen -destination=mocks/mock_executor.go -package=mocks github.com/SanCognition/reap/internal/proc Executor,FileReader

// Executor runs an external helper and returns its stdout. Both table
// backends shell out through it so tests can substitute canned output.
type Executor interface {
	Run(name string, args ...string) ([]byte, error)
}

// CommandRunnerFunc adapts a plain function to Executor.
type CommandRunnerFunc func(name string, args ...string) ([]byte, error)

func (f CommandRunnerFunc) Run(name string, args ...string) ([]byte, error) {
	return f(name, args...)
}

type RealExecutor struct{}

func (r *RealExecutor) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

var executor Executor = &RealExecutor{}

func SetExecutor(e Executor) {
	executor = e
}

func ResetExecutor() {
	executor = &RealExecutor{}
}

// Run executes a command using the current executor
func Run(name string, args ...string) ([]byte, error) {
	return executor.Run(name, args...)
}

// FileReader reads pseudo-filesystem entries for the procfs backend.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// FileReaderFunc adapts a plain function to FileReader.
type FileReaderFunc func(path string) ([]byte, error)

func (f FileReaderFunc) ReadFile(path string) ([]byte, error) {
	return f(path)
}

type OSFileReader struct{}

func (r *OSFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

var fileReader FileReader = &OSFileReader{}

func SetFileReader(f FileReader) {
	fileReader = f
}

func ResetFileReader() {
	fileReader = &OSFileReader{}
}

// ReadFile reads a file using the current file reader
func ReadFile(path string) ([]byte, error) {
	return fileReader.ReadFile(path)
}
