package gfx

import "fmt"

// CompileError is returned when a shader stage fails to compile.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %v shader: %v", e.Stage, e.Log)
}

// LinkError is returned when a program fails to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %v", e.Log)
}
