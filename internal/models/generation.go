package models

import "time"

// Artifact is one generated C# file
type Artifact struct {
	Name        string        // file name, e.g. Mockly.g.cs
	Content     string        // generated source text
	MethodCount int           // number of mocked methods it contains
	Elapsed     time.Duration // time spent assembling
}
