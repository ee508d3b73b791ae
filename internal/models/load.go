package models

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// LoadImage loads a single 2D image from disk and converts it to a grayscale
// stack of depth 1.
func LoadImage(path string) (*Stack, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	gray := imaging.Grayscale(img)
	return NewStackFromImages([]image.Image{gray}), nil
}

// LoadStack loads all supported images from a directory, sorted by filename,
// into a 3D stack. Slice order follows the alphanumeric filename order, so
// input series should be zero-padded.
func LoadStack(dir string) (*Stack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read stack directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".gif":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}
	sort.Strings(files)

	imgs := make([]image.Image, 0, len(files))
	var w, h int
	for i, f := range files {
		img, err := imaging.Open(f)
		if err != nil {
			return nil, fmt.Errorf("failed to load slice %s: %w", f, err)
		}
		gray := imaging.Grayscale(img)
		b := gray.Bounds()
		if i == 0 {
			w, h = b.Dx(), b.Dy()
		} else if b.Dx() != w || b.Dy() != h {
			return nil, fmt.Errorf("slice %s has dimensions %dx%d, expected %dx%d",
				f, b.Dx(), b.Dy(), w, h)
		}
		imgs = append(imgs, gray)
	}

	return NewStackFromImages(imgs), nil
}
