package meshio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/philipparndt/meshview/pkg/mesh"
	"github.com/philipparndt/meshview/pkg/obj"
	"github.com/philipparndt/meshview/pkg/stl"
)

// Parse decodes data in the given format
func Parse(ctx context.Context, format Format, data []byte) (*mesh.RawMesh, error) {
	switch format {
	case FormatASCIISTL:
		return stl.Parse(ctx, data)
	case FormatBinarySTL:
		return stl.ParseBinary(ctx, data)
	case FormatOBJ:
		return obj.Parse(ctx, bytes.NewReader(data))
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
}

// Load reads, parses and validates one mesh file. Read failures are reported
// as mesh.ErrIOFailure before any parsing happens.
func Load(ctx context.Context, path string) (*mesh.Mesh, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &mesh.ParseError{Kind: mesh.ErrIOFailure, Path: path, Err: err}
	}

	raw, err := Parse(ctx, format, data)
	if err != nil {
		return nil, mesh.WithPath(err, path)
	}

	m, err := mesh.New(raw)
	if err != nil {
		return nil, mesh.WithPath(err, path)
	}
	return m, nil
}

// LoadAll loads every path in its own goroutine. The meshes are returned in
// argument order. The first failure cancels the remaining loads; its error
// is returned and no meshes are.
func LoadAll(ctx context.Context, paths ...string) ([]*mesh.Mesh, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	meshes := make([]*mesh.Mesh, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := Load(ctx, path)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			meshes[i] = m
		}()
	}
	wg.Wait()

	// Loads aborted by a sibling's failure are not the root cause
	var canceled error
	for _, err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			if canceled == nil {
				canceled = err
			}
		default:
			return nil, err
		}
	}
	if canceled != nil {
		return nil, canceled
	}
	return meshes, nil
}

// LoadInto loads paths and puts them into model in one step. With replace
// the previous contents are dropped, otherwise the meshes are appended.
// On failure the model is left untouched.
func LoadInto(ctx context.Context, model *mesh.Model, replace bool, paths ...string) error {
	meshes, err := LoadAll(ctx, paths...)
	if err != nil {
		return err
	}

	if replace {
		model.Replace(meshes...)
		return nil
	}
	for _, m := range meshes {
		model.Append(m)
	}
	return nil
}
