// Package imagediff сравнивает два PNG-скриншота попиксельно.
package imagediff

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/orisano/pixelmatch"
)

var ErrSizeMismatch = errors.New("размеры изображений не совпадают")

const defaultThreshold = 0.1

// Result — итог сравнения двух изображений.
type Result struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	DiffPixels    int     `json:"diffPixels"`
	TotalPixels   int     `json:"totalPixels"`
	MismatchRatio float64 `json:"mismatchRatio"`
	DiffImage     []byte  `json:"-"`
}

// Compare декодирует два PNG и возвращает количество отличающихся пикселей,
// долю расхождения и diff-изображение. Threshold <= 0 означает значение по умолчанию.
func Compare(basePNG, actualPNG []byte, threshold float64) (*Result, error) {
	base, err := decodePNG(basePNG, "первое")
	if err != nil {
		return nil, err
	}
	actual, err := decodePNG(actualPNG, "второе")
	if err != nil {
		return nil, err
	}

	bb, ab := base.Bounds(), actual.Bounds()
	if bb.Dx() != ab.Dx() || bb.Dy() != ab.Dy() {
		return nil, fmt.Errorf("%w: %dx%d и %dx%d",
			ErrSizeMismatch, bb.Dx(), bb.Dy(), ab.Dx(), ab.Dy())
	}

	if threshold <= 0 {
		threshold = defaultThreshold
	}

	var diff image.Image
	count, err := pixelmatch.MatchPixel(base, actual,
		pixelmatch.Threshold(threshold),
		pixelmatch.WriteTo(&diff),
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка сравнения: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, diff); err != nil {
		return nil, fmt.Errorf("ошибка кодирования diff: %w", err)
	}

	total := bb.Dx() * bb.Dy()
	res := &Result{
		Width:       bb.Dx(),
		Height:      bb.Dy(),
		DiffPixels:  count,
		TotalPixels: total,
		DiffImage:   buf.Bytes(),
	}
	if total > 0 {
		res.MismatchRatio = float64(count) / float64(total)
	}
	return res, nil
}

func decodePNG(data []byte, which string) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("не удалось декодировать %s изображение: %w", which, err)
	}
	return img, nil
}
