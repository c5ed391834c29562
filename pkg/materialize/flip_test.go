// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package materialize

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipFile(t *testing.T) {
	dir := t.TempDir()
	src := path.Join(dir, "X0.png")
	original := testImage(4, 2)
	writePNG(t, src, original)

	dst := path.Join(dir, "out.png")
	require.NoError(t, FlipFile(src, dst, DefaultJPEGQuality))
	flipped, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, imaging.FlipH(original).Pix, imaging.Clone(flipped).Pix)

	// Flipping twice gives back the original.
	dst2 := path.Join(dir, "out2.png")
	require.NoError(t, FlipFile(dst, dst2, DefaultJPEGQuality))
	back, err := imaging.Open(dst2)
	require.NoError(t, err)
	assert.Equal(t, original.Pix, imaging.Clone(back).Pix)
}

func TestFlipFileErrors(t *testing.T) {
	dir := t.TempDir()
	src := path.Join(dir, "X0.png")
	writePNG(t, src, testImage(2, 2))

	err := FlipFile(path.Join(dir, "missing.png"), path.Join(dir, "out.png"), DefaultJPEGQuality)
	assert.Equal(t, OpRead, ErrorOp(err))
	assert.False(t, IsDecodeError(err))

	err = FlipFile(src, path.Join(dir, "out.unknown"), DefaultJPEGQuality)
	assert.Equal(t, OpSave, ErrorOp(err))

	err = FlipFile(src, path.Join(dir, "no_such_dir", "out.png"), DefaultJPEGQuality)
	assert.Equal(t, OpSave, ErrorOp(err))

	corrupt := path.Join(dir, "X1.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte{0xFF, 0xD8, 0x00}, 0644))
	err = FlipFile(corrupt, path.Join(dir, "out.jpg"), DefaultJPEGQuality)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
	assert.Contains(t, err.Error(), corrupt)
}

func TestFlipFileKeeps16Bits(t *testing.T) {
	dir := t.TempDir()

	gray := image.NewGray16(image.Rect(0, 0, 2, 1))
	gray.SetGray16(0, 0, color.Gray16{Y: 0x1234})
	gray.SetGray16(1, 0, color.Gray16{Y: 0xABCD})
	grayPath := path.Join(dir, "G0.png")
	writePNG(t, grayPath, gray)
	grayFlippedPath := path.Join(dir, "G0_flipped.png")
	require.NoError(t, FlipFile(grayPath, grayFlippedPath, DefaultJPEGQuality))
	f, err := os.Open(grayFlippedPath)
	require.NoError(t, err)
	decoded, err := png.Decode(f)
	_ = f.Close()
	require.NoError(t, err)
	grayFlipped, ok := decoded.(*image.Gray16)
	require.Truef(t, ok, "mirrored image decoded as %T", decoded)
	assert.Equal(t, color.Gray16{Y: 0xABCD}, grayFlipped.Gray16At(0, 0))
	assert.Equal(t, color.Gray16{Y: 0x1234}, grayFlipped.Gray16At(1, 0))

	rgba := image.NewNRGBA64(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			rgba.SetNRGBA64(x, y, color.NRGBA64{R: uint16(0x1001 * (x + 1)), G: uint16(0x0101 * (y + 3)), B: 0x7777, A: 0x8001})
		}
	}
	rgbaPath := path.Join(dir, "R0.png")
	writePNG(t, rgbaPath, rgba)
	rgbaFlippedPath := path.Join(dir, "R0_flipped.png")
	require.NoError(t, FlipFile(rgbaPath, rgbaFlippedPath, DefaultJPEGQuality))
	f, err = os.Open(rgbaFlippedPath)
	require.NoError(t, err)
	decoded, err = png.Decode(f)
	_ = f.Close()
	require.NoError(t, err)
	rgbaFlipped, ok := decoded.(*image.NRGBA64)
	require.Truef(t, ok, "mirrored image decoded as %T", decoded)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, rgba.NRGBA64At(2-x, y), rgbaFlipped.NRGBA64At(x, y), "pixel (%d, %d)", x, y)
		}
	}
}
