// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package materialize

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// FlipFile reads the image in src, mirrors it left-right (across the vertical axis) and saves
// it to dst, encoded in the format implied by dst's extension.
//
// jpegQuality is only used if dst is a JPEG file.
//
// EXIF orientation is not applied: pixels are flipped as stored. 16-bit images saved as PNG
// keep their pixel type; everything else is converted to 8-bit NRGBA.
func FlipFile(src, dst string, jpegQuality int) error {
	format, err := imaging.FormatFromFilename(dst)
	if err != nil {
		return newError(OpSave, dst, err)
	}

	f, err := os.Open(src)
	if err != nil {
		return newError(OpRead, src, err)
	}
	defer func() { _ = f.Close() }()
	img, err := imaging.Decode(f)
	if err != nil {
		return newError(OpDecode, src, errors.Wrap(err, "not a valid image"))
	}

	var flipped image.Image
	if format == imaging.PNG {
		flipped = flipH16(img)
	}
	if flipped == nil {
		flipped = imaging.FlipH(img)
	}
	out, err := os.Create(dst)
	if err != nil {
		return newError(OpSave, dst, err)
	}
	err = imaging.Encode(out, flipped, format, imaging.JPEGQuality(jpegQuality))
	if err != nil {
		_ = out.Close()
		return newError(OpSave, dst, errors.Wrapf(err, "encoding %s", format))
	}
	if err = out.Close(); err != nil {
		return newError(OpSave, dst, err)
	}
	return nil
}

// flipH16 mirrors left-right 16-bit grayscale and RGBA images without converting them.
// It returns nil for any other image type.
func flipH16(img image.Image) image.Image {
	switch src := img.(type) {
	case *image.Gray16:
		dst := image.NewGray16(image.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy()))
		mirrorPix(dst.Pix, dst.Stride, src.Pix, src.Stride, src.Rect.Dx(), src.Rect.Dy(), 2)
		return dst
	case *image.NRGBA64:
		dst := image.NewNRGBA64(image.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy()))
		mirrorPix(dst.Pix, dst.Stride, src.Pix, src.Stride, src.Rect.Dx(), src.Rect.Dy(), 8)
		return dst
	case *image.RGBA64:
		dst := image.NewRGBA64(image.Rect(0, 0, src.Rect.Dx(), src.Rect.Dy()))
		mirrorPix(dst.Pix, dst.Stride, src.Pix, src.Stride, src.Rect.Dx(), src.Rect.Dy(), 8)
		return dst
	}
	return nil
}

// mirrorPix copies the rows of src into dst with the order of the pixels reversed.
// Both buffers start at the first pixel of the image.
func mirrorPix(dst []uint8, dstStride int, src []uint8, srcStride int, width, height, bytesPerPixel int) {
	for y := 0; y < height; y++ {
		srcRow := src[y*srcStride : y*srcStride+width*bytesPerPixel]
		dstRow := dst[y*dstStride : y*dstStride+width*bytesPerPixel]
		for x := 0; x < width; x++ {
			copy(dstRow[(width-1-x)*bytesPerPixel:(width-x)*bytesPerPixel], srcRow[x*bytesPerPixel:(x+1)*bytesPerPixel])
		}
	}
}
