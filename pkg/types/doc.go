// Package types defines the data model shared by the barrel pipeline stages:
// the declaration found in a root file, the patterns classified from it, the
// export template, the files the resolver yields and the regenerated content.
// It also defines the FS interface the pipeline uses for all file access.
package types
