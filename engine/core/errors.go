package core

import (
	"errors"
)

var (
	// mesh parsing
	ErrFileNotFound    = errors.New("file not found")
	ErrMalformedFace   = errors.New("malformed face")
	ErrMalformedVertex = errors.New("malformed vertex")
	ErrIndexOutOfRange = errors.New("index out of range")

	// assets
	ErrUnknownAsset = errors.New("unknown asset")
	ErrNoLoader     = errors.New("no loader registered")

	// renderer
	ErrShaderCompile = errors.New("shader compilation failed")
	ErrProgramLink   = errors.New("program link failed")

	ErrEngineStage = errors.New("engine is in the wrong stage")
)
