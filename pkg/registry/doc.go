// Package registry provides a generic, type-safe registry for named
// configuration items such as table formats. A registry can be sealed once
// it has been populated; a sealed registry rejects every mutation and is safe
// to share between concurrent readers.
package registry
