package render

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Converter is the name of the external SVG converter binary.
const Converter = "rsvg-convert"

// ErrConverterMissing is returned when rsvg-convert is not on PATH.
var ErrConverterMissing = errors.New("rsvg-convert not found: install librsvg (brew install librsvg, apt install librsvg2-bin)")

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// ToPDF converts SVG to PDF with rsvg-convert.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf", 0)
}

// ToPNG converts SVG to PNG with rsvg-convert. scale multiplies the image
// size; values <= 0 mean 1.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "png", scale)
}

func convert(svg []byte, format string, scale float64) ([]byte, error) {
	bin, err := lookPath(Converter)
	if err != nil {
		return nil, ErrConverterMissing
	}

	cmd := exec.Command(bin, convertArgs(format, scale)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s to %s: %w", Converter, format, err)
		}
		return nil, fmt.Errorf("%s to %s: %w: %s", Converter, format, err, msg)
	}
	return stdout.Bytes(), nil
}

func convertArgs(format string, scale float64) []string {
	args := []string{"--format", format}
	if scale > 0 && scale != 1 {
		z := strconv.FormatFloat(scale, 'f', -1, 64)
		args = append(args, "--zoom", z)
	}
	return args
}
