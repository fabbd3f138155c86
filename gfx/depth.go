package gfx

import (
	"fmt"
	"strings"
)

// DepthFunc is a depth comparison mode.
type DepthFunc uint32

const (
	Never    DepthFunc = 0x0200
	Less     DepthFunc = 0x0201
	Equal    DepthFunc = 0x0202
	LEqual   DepthFunc = 0x0203
	Greater  DepthFunc = 0x0204
	NotEqual DepthFunc = 0x0205
	GEqual   DepthFunc = 0x0206
	Always   DepthFunc = 0x0207
)

var depthFuncNames = map[DepthFunc]string{
	Never:    "NEVER",
	Less:     "LESS",
	Equal:    "EQUAL",
	LEqual:   "LEQUAL",
	Greater:  "GREATER",
	NotEqual: "NOTEQUAL",
	GEqual:   "GEQUAL",
	Always:   "ALWAYS",
}

func (f DepthFunc) String() string {
	if s, ok := depthFuncNames[f]; ok {
		return s
	}
	return fmt.Sprintf("DepthFunc(%#x)", uint32(f))
}

// ParseDepthFunc resolves a comparison mode name such as "LEQUAL".
// Matching is case-insensitive.
func ParseDepthFunc(name string) (DepthFunc, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for f, s := range depthFuncNames {
		if s == want {
			return f, nil
		}
	}
	return 0, fmt.Errorf("gfx: unknown depth func %q", name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *DepthFunc) UnmarshalText(text []byte) error {
	v, err := ParseDepthFunc(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
